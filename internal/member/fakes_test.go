// AngelaMos | 2026
// fakes_test.go

package member_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/member"
	"github.com/carterperez-dev/gym-membership/internal/membership"
	"github.com/carterperez-dev/gym-membership/internal/plan"
)

type fakeRepo struct {
	mu      sync.Mutex
	members map[string]member.Member
	updates int
}

func newFakeRepo(members ...member.Member) *fakeRepo {
	r := &fakeRepo{members: map[string]member.Member{}}
	for _, m := range members {
		if m.Version == 0 {
			m.Version = 1
		}
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.Version = 1
	r.members[m.ID] = *m
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	return &m, nil
}

func (r *fakeRepo) GetByIDForUpdate(ctx context.Context, id string) (*member.Member, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) Update(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.members[m.ID]
	if !ok {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	if stored.Version != m.Version {
		return fmt.Errorf("update member: %w", core.ErrConflict)
	}
	m.Version++
	m.RegistrationDate = stored.RegistrationDate
	r.members[m.ID] = *m
	r.updates++
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return fmt.Errorf("delete member: %w", core.ErrNotFound)
	}
	delete(r.members, id)
	return nil
}

func (r *fakeRepo) sorted(keep func(m *member.Member) bool) []member.Member {
	out := []member.Member{}
	for _, m := range r.members {
		if keep(&m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out
}

func (r *fakeRepo) List(
	_ context.Context,
	params member.ListMembersParams,
	today time.Time,
) ([]member.Member, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(m *member.Member) bool {
		switch params.Status {
		case member.StatusActive:
			return membership.IsActive(m.IsActive, m.MembershipEndDate, today)
		case member.StatusExpired:
			return membership.IsExpired(m.MembershipEndDate, today)
		case member.StatusInactive:
			return !m.IsActive
		case member.StatusPaymentDue:
			return membership.IsPaymentDue(m.MembershipEndDate, today)
		}
		return true
	})
	return out, len(out), nil
}

func (r *fakeRepo) Search(_ context.Context, term string, limit int) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	term = strings.ToLower(term)
	out := r.sorted(func(m *member.Member) bool {
		hay := strings.ToLower(m.FirstName + "|" + m.LastName + "|" + m.Email + "|" + m.PhoneNumber)
		return m.IsActive && strings.Contains(hay, term)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) ListDue(_ context.Context, today time.Time, limit int) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(m *member.Member) bool {
		return m.IsActive && membership.IsPaymentDue(m.MembershipEndDate, today)
	})
	return out, nil
}

func (r *fakeRepo) ListCheckInCandidates(_ context.Context, today time.Time) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(m *member.Member) bool { return m.CanCheckIn(today) }), nil
}

func (r *fakeRepo) RecentAttendances(context.Context, string, int) ([]member.AttendanceSummary, error) {
	return []member.AttendanceSummary{}, nil
}

func (r *fakeRepo) RecentPayments(context.Context, string, int) ([]member.PaymentSummary, error) {
	return []member.PaymentSummary{}, nil
}

type fakePlans map[string]plan.Plan

func (f fakePlans) Get(_ context.Context, id string) (*plan.Plan, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	return &p, nil
}

func (f fakePlans) FindActive(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, core.Validation("membership plan is not active")
	}
	return p, nil
}

var (
	today    = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	clock    = core.FixedClock(today.Add(9*time.Hour + 30*time.Minute))
	monthly  = plan.Plan{ID: "00000000-0000-0000-0000-000000000001", Name: "Monthly", PriceCents: 5000, DurationInDays: 30, IsActive: true}
	retired  = plan.Plan{ID: "00000000-0000-0000-0000-000000000009", Name: "Legacy", PriceCents: 1000, DurationInDays: 10, IsActive: false}
	allPlans = fakePlans{monthly.ID: monthly, retired.ID: retired}
)

func day(offset int) *time.Time {
	d := membership.AddDays(today, offset)
	return &d
}

func ptr[T any](v T) *T {
	return &v
}

func newMember(id, first, last string, end *time.Time) member.Member {
	return member.Member{
		ID:                id,
		FirstName:         first,
		LastName:          last,
		Email:             strings.ToLower(first) + "@example.com",
		PhoneNumber:       "555-0100",
		RegistrationDate:  today.AddDate(-1, 0, 0),
		MembershipEndDate: end,
		IsActive:          true,
		Version:           1,
	}
}
