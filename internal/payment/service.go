// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/events"
	"github.com/carterperez-dev/gym-membership/internal/member"
	"github.com/carterperez-dev/gym-membership/internal/membership"
	"github.com/carterperez-dev/gym-membership/internal/plan"
)

const pendingLimit = 100

// Stores groups the repositories a payment touches. Built once on the
// pool for reads and again on each transaction for writes.
type Stores struct {
	Payments Repository
	Members  member.Repository
	Plans    plan.Repository
}

type StoreFactory func(db core.DBTX) Stores

func NewStores(db core.DBTX) Stores {
	return Stores{
		Payments: NewRepository(db),
		Members:  member.NewRepository(db),
		Plans:    plan.NewRepository(db),
	}
}

type Service struct {
	stores    Stores
	tx        core.Transactor
	newStores StoreFactory
	clock     core.Clock
	events    events.Publisher
	readModel core.Invalidator
}

func NewService(
	db core.DBTX,
	tx core.Transactor,
	newStores StoreFactory,
	clock core.Clock,
	publisher events.Publisher,
) *Service {
	if newStores == nil {
		newStores = NewStores
	}
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		stores:    newStores(db),
		tx:        tx,
		newStores: newStores,
		clock:     clock,
		events:    publisher,
	}
}

// InvalidateOnWrite registers a read model to drop after every committed
// ledger write.
func (s *Service) InvalidateOnWrite(inv core.Invalidator) {
	s.readModel = inv
}

func (s *Service) Clock() core.Clock {
	return s.clock
}

// Create records the payment and, for a completed payment against a plan,
// extends the member's window in the same transaction.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (p *Payment, err error) {
	ctx, span := core.StartSpan(ctx, "payment.create",
		attribute.String("member_id", req.MemberID),
		attribute.String("status", string(req.Status)),
	)
	defer func() { core.EndSpan(span, err) }()

	if !req.Status.Valid() {
		return nil, core.Validation("invalid payment status")
	}
	if req.AmountCents < 0 {
		return nil, core.Validation("amount must not be negative")
	}

	p = &Payment{
		ID:                   uuid.New().String(),
		MemberID:             req.MemberID,
		AmountCents:          req.AmountCents,
		PaymentDate:          s.clock.Now(),
		Method:               req.Method,
		Status:               req.Status,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
	}
	if req.MembershipPlanID != nil && *req.MembershipPlanID != "" {
		p.MembershipPlanID = req.MembershipPlanID
	}

	var window *membership.Window

	err = s.tx.WithTx(ctx, func(tx core.DBTX) error {
		stores := s.newStores(tx)

		m, err := stores.Members.GetByIDForUpdate(ctx, p.MemberID)
		if err != nil {
			return err
		}
		p.MemberName = m.FullName()

		var pl *plan.Plan
		if p.MembershipPlanID != nil {
			pl, err = stores.Plans.GetByID(ctx, *p.MembershipPlanID)
			if err != nil {
				return err
			}
			p.PlanName = &pl.Name
		}

		p.MembershipExtended = p.ExtendsMembership()

		if err := stores.Payments.Create(ctx, p); err != nil {
			return err
		}

		if !p.MembershipExtended {
			return nil
		}

		w := m.ExtendWith(pl.ID, pl.DurationInDays, s.clock.Today())
		window = &w

		return stores.Members.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	core.InvalidateAfterWrite(ctx, s.readModel)
	core.PaymentsTotal.WithLabelValues(string(p.Status)).Inc()
	core.PaymentAmountCents.WithLabelValues(string(p.Status)).Add(float64(p.AmountCents))

	slog.InfoContext(ctx, "payment recorded",
		"payment_id", p.ID,
		"member_id", p.MemberID,
		"amount_cents", p.AmountCents,
		"status", p.Status,
		"membership_extended", p.MembershipExtended,
	)

	events.Emit(ctx, s.events, events.TopicPayments, events.Event{
		Type:       events.TypePaymentRecorded,
		Key:        p.MemberID,
		OccurredAt: p.PaymentDate,
		Data: events.PaymentRecorded{
			PaymentID:   p.ID,
			MemberID:    p.MemberID,
			PlanID:      p.MembershipPlanID,
			AmountCents: p.AmountCents,
			Method:      string(p.Method),
			Status:      string(p.Status),
			Extended:    p.MembershipExtended,
		},
	})

	if window != nil {
		core.MembershipExtensionsTotal.WithLabelValues(core.ExtensionSourcePayment).Inc()

		events.Emit(ctx, s.events, events.TopicMembership, events.Event{
			Type:       events.TypeMembershipExtended,
			Key:        p.MemberID,
			OccurredAt: p.PaymentDate,
			Data: events.MembershipExtended{
				MemberID:  p.MemberID,
				PlanID:    *p.MembershipPlanID,
				Source:    core.ExtensionSourcePayment,
				StartDate: window.Start.Format(member.DateLayout),
				EndDate:   window.End.Format(member.DateLayout),
			},
		})
	}

	return p, nil
}

// Prefill suggests a payment for the member's current plan.
func (s *Service) Prefill(ctx context.Context, memberID string) (*Prefill, error) {
	m, err := s.stores.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	out := &Prefill{
		MemberID:   m.ID,
		MemberName: m.FullName(),
		Method:     MethodCash,
		Status:     StatusCompleted,
	}

	if m.MembershipPlanID == nil {
		return out, nil
	}

	pl, err := s.stores.Plans.GetByID(ctx, *m.MembershipPlanID)
	if errors.Is(err, core.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	out.MembershipPlanID = &pl.ID
	out.PlanName = &pl.Name
	out.AmountCents = pl.PriceCents

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return s.stores.Payments.GetByID(ctx, id)
}

// Edit changes bookkeeping fields. The status of a payment that already
// extended a membership is frozen so the ledger never disagrees with the
// member's window.
func (s *Service) Edit(ctx context.Context, id string, req EditPaymentRequest) (*Payment, error) {
	p, err := s.stores.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != p.Status {
		if !req.Status.Valid() {
			return nil, core.Validation("invalid payment status")
		}
		if p.MembershipExtended {
			return nil, core.Validation("status cannot be changed on a payment that extended a membership")
		}
		p.Status = *req.Status
	}
	if req.TransactionReference != nil {
		p.TransactionReference = req.TransactionReference
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}

	if err := s.stores.Payments.Update(ctx, p); err != nil {
		return nil, err
	}
	core.InvalidateAfterWrite(ctx, s.readModel)

	return p, nil
}

// Delete removes the ledger row. Any extension it caused stays in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.stores.Payments.Delete(ctx, id); err != nil {
		return err
	}

	core.InvalidateAfterWrite(ctx, s.readModel)

	slog.InfoContext(ctx, "payment deleted", "payment_id", id)
	return nil
}

func (s *Service) List(ctx context.Context, params ListPaymentsParams) (*ListResult, error) {
	params.Normalize()
	if params.Status != "" && !params.Status.Valid() {
		return nil, core.Validation("invalid payment status")
	}
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		return nil, core.Validation("from date must not be after to date")
	}
	return s.stores.Payments.List(ctx, params)
}

func (s *Service) Pending(ctx context.Context) ([]Payment, error) {
	return s.stores.Payments.ListPending(ctx, pendingLimit)
}
