// AngelaMos | 2026
// service.go

package plan

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gym-membership/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if req.DurationInDays <= 0 {
		return nil, core.Validation("duration in days must be positive")
	}
	if req.PriceCents < 0 {
		return nil, core.Validation("price must not be negative")
	}

	plan := &Plan{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		DurationInDays: req.DurationInDays,
		IsActive:       true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "plan created",
		"plan_id", plan.ID,
		"name", plan.Name,
		"duration_days", plan.DurationInDays,
	)

	return plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePlanRequest,
) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, core.Validation("price must not be negative")
		}
		plan.PriceCents = *req.PriceCents
	}
	if req.DurationInDays != nil {
		if *req.DurationInDays <= 0 {
			return nil, core.Validation("duration in days must be positive")
		}
		plan.DurationInDays = *req.DurationInDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Deactivate hides the plan from new assignments while keeping the row
// for historical payments.
func (s *Service) Deactivate(ctx context.Context, id string) (*Plan, error) {
	inactive := false
	return s.Update(ctx, id, UpdatePlanRequest{IsActive: &inactive})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Plan, error) {
	return s.repo.List(ctx, ListPlansParams{ActiveOnly: activeOnly})
}

// FindActive returns the plan only if it can be assigned to members.
func (s *Service) FindActive(ctx context.Context, id string) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, core.Validation("membership plan is not active")
	}
	return plan, nil
}
