// AngelaMos | 2026
// dto.go

package plan

import (
	"time"
)

type CreatePlanRequest struct {
	Name           string  `json:"name"             validate:"required,min=1,max=100"`
	Description    *string `json:"description"      validate:"omitempty,max=1000"`
	PriceCents     int64   `json:"price_cents"      validate:"gte=0"`
	DurationInDays int     `json:"duration_in_days" validate:"required,gt=0"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type UpdatePlanRequest struct {
	Name           *string `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	Description    *string `json:"description,omitempty"      validate:"omitempty,max=1000"`
	PriceCents     *int64  `json:"price_cents,omitempty"      validate:"omitempty,gte=0"`
	DurationInDays *int    `json:"duration_in_days,omitempty" validate:"omitempty,gt=0"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type PlanResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	PriceCents     int64     `json:"price_cents"`
	DurationInDays int       `json:"duration_in_days"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListPlansParams struct {
	ActiveOnly bool
}

func ToPlanResponse(p *Plan) PlanResponse {
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		DurationInDays: p.DurationInDays,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToPlanResponseList(plans []Plan) []PlanResponse {
	responses := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, ToPlanResponse(&plans[i]))
	}
	return responses
}
