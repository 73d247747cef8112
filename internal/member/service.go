// AngelaMos | 2026
// service.go

package member

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/events"
	"github.com/carterperez-dev/gym-membership/internal/membership"
	"github.com/carterperez-dev/gym-membership/internal/plan"
)

const (
	searchLimit  = 10
	historyLimit = 10
	dueLimit     = 100
)

type PlanFinder interface {
	Get(ctx context.Context, id string) (*plan.Plan, error)
	FindActive(ctx context.Context, id string) (*plan.Plan, error)
}

type Service struct {
	repo      Repository
	plans     PlanFinder
	clock     core.Clock
	events    events.Publisher
	readModel core.Invalidator
}

func NewService(
	repo Repository,
	plans PlanFinder,
	clock core.Clock,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{repo: repo, plans: plans, clock: clock, events: publisher}
}

// InvalidateOnWrite registers a read model to drop after every committed
// member write.
func (s *Service) InvalidateOnWrite(inv core.Invalidator) {
	s.readModel = inv
}

func (s *Service) Clock() core.Clock {
	return s.clock
}

func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	loc := s.clock.Location()

	dob, err := ParseDate(req.DateOfBirth, loc)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate(req.MembershipStartDate, loc)
	if err != nil {
		return nil, err
	}

	member := &Member{
		ID:                  uuid.New().String(),
		FirstName:           strings.TrimSpace(req.FirstName),
		LastName:            strings.TrimSpace(req.LastName),
		Email:               strings.TrimSpace(req.Email),
		PhoneNumber:         strings.TrimSpace(req.PhoneNumber),
		DateOfBirth:         dob,
		Address:             req.Address,
		EmergencyContact:    req.EmergencyContact,
		EmergencyPhone:      req.EmergencyPhone,
		Notes:               req.Notes,
		RegistrationDate:    s.clock.Now(),
		IsActive:            true,
		MembershipStartDate: start,
	}

	if req.MembershipPlanID != nil && *req.MembershipPlanID != "" {
		p, err := s.plans.FindActive(ctx, *req.MembershipPlanID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.Validation("membership plan does not exist")
			}
			return nil, err
		}

		member.MembershipPlanID = &p.ID
		if start != nil {
			end := membership.AddDays(*start, p.DurationInDays)
			member.MembershipEndDate = &end
		}
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	core.InvalidateAfterWrite(ctx, s.readModel)

	slog.InfoContext(ctx, "member registered",
		"member_id", member.ID,
		"plan_id", member.MembershipPlanID,
	)

	events.Emit(ctx, s.events, events.TopicMembership, events.Event{
		Type:       events.TypeMemberRegistered,
		Key:        member.ID,
		OccurredAt: s.clock.Now(),
		Data:       events.MemberRegistered{MemberID: member.ID, Email: member.Email},
	})

	return member, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

// Detail loads the member with its most recent visits and payments.
func (s *Service) Detail(ctx context.Context, id string) (*Detail, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attendances, err := s.repo.RecentAttendances(ctx, id, historyLimit)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.RecentPayments(ctx, id, historyLimit)
	if err != nil {
		return nil, err
	}

	return &Detail{Member: member, Attendances: attendances, Payments: payments}, nil
}

// Edit replaces the editable fields. The stored registration date is kept
// whatever the request carries; a stale version is a conflict.
func (s *Service) Edit(ctx context.Context, id string, req EditMemberRequest) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	loc := s.clock.Location()

	dob, err := ParseDate(req.DateOfBirth, loc)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate(req.MembershipStartDate, loc)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(req.MembershipEndDate, loc)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, core.Validation("membership start date must not be after end date")
	}

	if req.MembershipPlanID != nil && *req.MembershipPlanID != "" {
		if _, err := s.plans.Get(ctx, *req.MembershipPlanID); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.Validation("membership plan does not exist")
			}
			return nil, err
		}
		member.MembershipPlanID = req.MembershipPlanID
	} else {
		member.MembershipPlanID = nil
	}

	member.FirstName = strings.TrimSpace(req.FirstName)
	member.LastName = strings.TrimSpace(req.LastName)
	member.Email = strings.TrimSpace(req.Email)
	member.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	member.DateOfBirth = dob
	member.Address = req.Address
	member.EmergencyContact = req.EmergencyContact
	member.EmergencyPhone = req.EmergencyPhone
	member.Notes = req.Notes
	member.MembershipStartDate = start
	member.MembershipEndDate = end
	member.IsActive = req.IsActive
	member.Version = req.Version

	if err := s.update(ctx, member); err != nil {
		return nil, err
	}
	core.InvalidateAfterWrite(ctx, s.readModel)

	return member, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	core.InvalidateAfterWrite(ctx, s.readModel)

	slog.InfoContext(ctx, "member deleted", "member_id", id)
	return nil
}

// Renew applies the plan's duration to the member's current window.
func (s *Service) Renew(ctx context.Context, id, planID string) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.plans.FindActive(ctx, planID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("membership plan")
		}
		return nil, err
	}

	w := member.ExtendWith(p.ID, p.DurationInDays, s.clock.Today())
	member.PlanName = &p.Name

	if err := s.update(ctx, member); err != nil {
		return nil, err
	}
	core.InvalidateAfterWrite(ctx, s.readModel)

	core.MembershipExtensionsTotal.WithLabelValues(core.ExtensionSourceRenewal).Inc()

	slog.InfoContext(ctx, "membership renewed",
		"member_id", member.ID,
		"plan_id", p.ID,
		"start", w.Start.Format(DateLayout),
		"end", w.End.Format(DateLayout),
	)

	events.Emit(ctx, s.events, events.TopicMembership, events.Event{
		Type:       events.TypeMembershipExtended,
		Key:        member.ID,
		OccurredAt: s.clock.Now(),
		Data: events.MembershipExtended{
			MemberID:  member.ID,
			PlanID:    p.ID,
			Source:    core.ExtensionSourceRenewal,
			StartDate: w.Start.Format(DateLayout),
			EndDate:   w.End.Format(DateLayout),
		},
	})

	return member, nil
}

func (s *Service) update(ctx context.Context, member *Member) error {
	err := s.repo.Update(ctx, member)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrConflict):
		return core.Conflict("member was modified by another request, reload and try again")
	case errors.Is(err, core.ErrInvalidInput):
		return core.Validation("membership start date must not be after end date")
	}
	return err
}

func (s *Service) Search(ctx context.Context, term string) ([]Member, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, core.Validation("Please enter a search term.")
	}

	return s.repo.Search(ctx, term, searchLimit)
}

func (s *Service) List(ctx context.Context, params ListMembersParams) ([]Member, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params, s.clock.Today())
}

// DueMembers lists active members whose window ends within the payment
// due window, soonest first.
func (s *Service) DueMembers(ctx context.Context) ([]Member, error) {
	return s.repo.ListDue(ctx, s.clock.Today(), dueLimit)
}

func (s *Service) CheckInCandidates(ctx context.Context) ([]Member, error) {
	return s.repo.ListCheckInCandidates(ctx, s.clock.Today())
}
