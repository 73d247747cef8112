// AngelaMos | 2026
// fakes_test.go

package payment_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/member"
	"github.com/carterperez-dev/gym-membership/internal/membership"
	"github.com/carterperez-dev/gym-membership/internal/payment"
	"github.com/carterperez-dev/gym-membership/internal/plan"
)

var errInjected = errors.New("injected failure")

// ledger is the shared in-memory store. WithTx snapshots it and restores
// the snapshot when fn fails.
type ledger struct {
	mu       sync.Mutex
	members  map[string]member.Member
	plans    map[string]plan.Plan
	payments map[string]payment.Payment

	failMemberUpdate bool
	txCount          int
}

func newLedger() *ledger {
	return &ledger{
		members:  map[string]member.Member{},
		plans:    map[string]plan.Plan{},
		payments: map[string]payment.Payment{},
	}
}

func (l *ledger) WithTx(_ context.Context, fn func(tx core.DBTX) error) error {
	l.mu.Lock()
	l.txCount++
	members := maps.Clone(l.members)
	payments := maps.Clone(l.payments)
	l.mu.Unlock()

	if err := fn(nil); err != nil {
		l.mu.Lock()
		l.members = members
		l.payments = payments
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *ledger) stores(core.DBTX) payment.Stores {
	return payment.Stores{
		Payments: &paymentStore{l: l},
		Members:  &memberStore{l: l},
		Plans:    &planStore{l: l},
	}
}

type memberStore struct {
	member.Repository
	l *ledger
}

func (s *memberStore) GetByID(_ context.Context, id string) (*member.Member, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	m, ok := s.l.members[id]
	if !ok {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	return &m, nil
}

func (s *memberStore) GetByIDForUpdate(ctx context.Context, id string) (*member.Member, error) {
	return s.GetByID(ctx, id)
}

func (s *memberStore) Update(_ context.Context, m *member.Member) error {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if s.l.failMemberUpdate {
		return fmt.Errorf("update member: %w", errInjected)
	}
	stored, ok := s.l.members[m.ID]
	if !ok {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	if stored.Version != m.Version {
		return fmt.Errorf("update member: %w", core.ErrConflict)
	}
	m.Version++
	s.l.members[m.ID] = *m
	return nil
}

type planStore struct {
	plan.Repository
	l *ledger
}

func (s *planStore) GetByID(_ context.Context, id string) (*plan.Plan, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	p, ok := s.l.plans[id]
	if !ok {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	return &p, nil
}

type paymentStore struct {
	l *ledger
}

func (s *paymentStore) Create(_ context.Context, p *payment.Payment) error {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if _, ok := s.l.members[p.MemberID]; !ok {
		return fmt.Errorf("create payment: %w", core.ErrNotFound)
	}
	p.CreatedAt = p.PaymentDate
	p.UpdatedAt = p.PaymentDate
	s.l.payments[p.ID] = *p
	return nil
}

func (s *paymentStore) GetByID(_ context.Context, id string) (*payment.Payment, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	p, ok := s.l.payments[id]
	if !ok {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	return &p, nil
}

func (s *paymentStore) Update(_ context.Context, p *payment.Payment) error {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if _, ok := s.l.payments[p.ID]; !ok {
		return fmt.Errorf("update payment: %w", core.ErrNotFound)
	}
	s.l.payments[p.ID] = *p
	return nil
}

func (s *paymentStore) Delete(_ context.Context, id string) error {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if _, ok := s.l.payments[id]; !ok {
		return fmt.Errorf("delete payment: %w", core.ErrNotFound)
	}
	delete(s.l.payments, id)
	return nil
}

func (s *paymentStore) List(_ context.Context, params payment.ListPaymentsParams) (*payment.ListResult, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	out := &payment.ListResult{Payments: []payment.Payment{}}
	for _, p := range s.l.payments {
		if params.From != nil && p.PaymentDate.Before(membership.Date(*params.From)) {
			continue
		}
		if params.To != nil && !p.PaymentDate.Before(membership.AddDays(membership.Date(*params.To), 1)) {
			continue
		}
		if params.MemberID != "" && p.MemberID != params.MemberID {
			continue
		}
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		out.Payments = append(out.Payments, p)
		if p.Status == payment.StatusCompleted {
			out.TotalCompletedCents += p.AmountCents
		}
	}
	sort.Slice(out.Payments, func(i, j int) bool {
		return out.Payments[i].PaymentDate.After(out.Payments[j].PaymentDate)
	})
	out.Total = len(out.Payments)
	return out, nil
}

func (s *paymentStore) ListPending(ctx context.Context, _ int) ([]payment.Payment, error) {
	res, err := s.List(ctx, payment.ListPaymentsParams{Status: payment.StatusPending})
	if err != nil {
		return nil, err
	}
	sort.Slice(res.Payments, func(i, j int) bool {
		return res.Payments[i].PaymentDate.Before(res.Payments[j].PaymentDate)
	})
	return res.Payments, nil
}

var (
	now   = time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	today = membership.Date(now)
)

const (
	memberID  = "11111111-1111-1111-1111-111111111111"
	monthlyID = "00000000-0000-0000-0000-000000000001"
	legacyID  = "00000000-0000-0000-0000-000000000009"
)

func endIn(days int) *time.Time {
	d := membership.AddDays(today, days)
	return &d
}

func seed(l *ledger, end *time.Time) {
	l.members[memberID] = member.Member{
		ID:                memberID,
		FirstName:         "Ola",
		LastName:          "Berg",
		IsActive:          true,
		MembershipEndDate: end,
		MembershipPlanID:  ptr(monthlyID),
		Version:           1,
	}
	l.plans[monthlyID] = plan.Plan{ID: monthlyID, Name: "Monthly", PriceCents: 5000, DurationInDays: 30, IsActive: true}
	l.plans[legacyID] = plan.Plan{ID: legacyID, Name: "Legacy", PriceCents: 900, DurationInDays: 10, IsActive: false}
}

func ptr[T any](v T) *T {
	return &v
}
