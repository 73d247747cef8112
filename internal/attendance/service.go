// AngelaMos | 2026
// service.go

package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/events"
	"github.com/carterperez-dev/gym-membership/internal/member"
)

const (
	msgNoActiveMembership = "Member does not have an active membership."
	msgAlreadyCheckedIn   = "Member is already checked in."
	msgAlreadyCheckedOut  = "Already checked out."
	msgNotFoundOrInactive = "Member not found or inactive."
	msgMembershipExpired  = "Membership has expired."
	msgEnterSearchTerm    = "Please enter a search term."
)

type MemberFinder interface {
	Get(ctx context.Context, id string) (*member.Member, error)
	Search(ctx context.Context, term string) ([]member.Member, error)
}

type Service struct {
	repo      Repository
	members   MemberFinder
	clock     core.Clock
	events    events.Publisher
	readModel core.Invalidator
}

func NewService(
	repo Repository,
	members MemberFinder,
	clock core.Clock,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{repo: repo, members: members, clock: clock, events: publisher}
}

// InvalidateOnWrite registers a read model to drop after every committed
// check-in, check-out or delete.
func (s *Service) InvalidateOnWrite(inv core.Invalidator) {
	s.readModel = inv
}

func (s *Service) Clock() core.Clock {
	return s.clock
}

// CheckIn opens a visit for a member with a current membership.
func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	m, err := s.members.Get(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.Validation(msgNoActiveMembership)
		}
		return nil, err
	}

	if !m.CanCheckIn(s.clock.Today()) {
		return nil, core.Validation(msgNoActiveMembership)
	}

	a, err := s.open(ctx, m, req.Notes, "standard")
	if err != nil {
		return nil, err
	}

	return &CheckInResult{
		Attendance: a,
		Message: fmt.Sprintf("%s checked in successfully at %s",
			m.FullName(), a.CheckInTime.In(s.clock.Location()).Format(clockLayout)),
	}, nil
}

func (s *Service) open(ctx context.Context, m *member.Member, notes *string, mode string) (*Attendance, error) {
	a := &Attendance{
		ID:          uuid.New().String(),
		MemberID:    m.ID,
		MemberName:  m.FullName(),
		CheckInTime: s.clock.Now(),
		Notes:       notes,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		switch {
		case errors.Is(err, core.ErrConflict):
			return nil, core.Conflict(msgAlreadyCheckedIn)
		case errors.Is(err, core.ErrNotFound):
			return nil, core.Validation(msgNoActiveMembership)
		}
		return nil, err
	}

	core.CheckInsTotal.WithLabelValues(mode).Inc()
	core.InvalidateAfterWrite(ctx, s.readModel)

	slog.InfoContext(ctx, "member checked in",
		"attendance_id", a.ID,
		"member_id", m.ID,
		"mode", mode,
	)

	events.Emit(ctx, s.events, events.TopicAttendance, events.Event{
		Type:       events.TypeCheckedIn,
		Key:        m.ID,
		OccurredAt: a.CheckInTime,
		Data: events.CheckedIn{
			AttendanceID: a.ID,
			MemberID:     m.ID,
			CheckInTime:  a.CheckInTime,
		},
	})

	return a, nil
}

func (s *Service) CheckOut(ctx context.Context, id string) (*Attendance, error) {
	a, err := s.repo.CheckOut(ctx, id, s.clock.Now())
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.Conflict(msgAlreadyCheckedOut)
		}
		return nil, err
	}

	core.CheckOutsTotal.Inc()
	core.InvalidateAfterWrite(ctx, s.readModel)

	events.Emit(ctx, s.events, events.TopicAttendance, events.Event{
		Type:       events.TypeCheckedOut,
		Key:        a.MemberID,
		OccurredAt: *a.CheckOutTime,
		Data: events.CheckedOut{
			AttendanceID: a.ID,
			MemberID:     a.MemberID,
			CheckOutTime: *a.CheckOutTime,
		},
	})

	return a, nil
}

// QuickSearch backs the kiosk search box. A blank term is reported in the
// result, not as an error.
func (s *Service) QuickSearch(ctx context.Context, term string) (*QuickSearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return &QuickSearchResult{Message: msgEnterSearchTerm}, nil
	}

	members, err := s.members.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	return &QuickSearchResult{Success: true, Members: members}, nil
}

// QuickCheckIn is the kiosk flow. Only infrastructure failures are
// returned as errors.
func (s *Service) QuickCheckIn(ctx context.Context, memberID string) (*QuickCheckInResult, error) {
	if !core.IsUUID(memberID) {
		return &QuickCheckInResult{Message: msgNotFoundOrInactive}, nil
	}

	m, err := s.members.Get(ctx, memberID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if m == nil || !m.IsActive {
		return &QuickCheckInResult{Message: msgNotFoundOrInactive}, nil
	}

	if !m.HasActiveMembership(s.clock.Today()) {
		return &QuickCheckInResult{Message: msgMembershipExpired}, nil
	}

	a, err := s.open(ctx, m, nil, "quick")
	if err != nil {
		if appErr, ok := core.AsAppError(err); ok {
			return &QuickCheckInResult{Message: appErr.Message}, nil
		}
		return nil, err
	}

	return &QuickCheckInResult{
		Success:     true,
		Message:     m.FullName() + " checked in successfully!",
		CheckInTime: a.CheckInTime.In(s.clock.Location()).Format(clockLayout),
	}, nil
}

func (s *Service) List(ctx context.Context, params ListAttendanceParams) ([]Attendance, int, error) {
	params.Normalize()
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		return nil, 0, core.Validation("from date must not be after to date")
	}
	return s.repo.List(ctx, params)
}

// Today lists visits that started on the current calendar date.
func (s *Service) Today(ctx context.Context, page, pageSize int) ([]Attendance, int, error) {
	today := s.clock.Today()
	return s.List(ctx, ListAttendanceParams{
		Page:     page,
		PageSize: pageSize,
		From:     &today,
		To:       &today,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*Attendance, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	core.InvalidateAfterWrite(ctx, s.readModel)
	return nil
}
