// AngelaMos | 2026
// dto.go

package member

import (
	"time"

	"github.com/carterperez-dev/gym-membership/internal/core"
)

const DateLayout = "2006-01-02"

type CreateMemberRequest struct {
	FirstName           string  `json:"first_name"                      validate:"required,min=1,max=100"`
	LastName            string  `json:"last_name"                       validate:"required,min=1,max=100"`
	Email               string  `json:"email"                           validate:"required,email,max=255"`
	PhoneNumber         string  `json:"phone_number"                    validate:"required,min=5,max=32"`
	DateOfBirth         *string `json:"date_of_birth,omitempty"         validate:"omitempty,datetime=2006-01-02"`
	Address             *string `json:"address,omitempty"               validate:"omitempty,max=500"`
	EmergencyContact    *string `json:"emergency_contact,omitempty"     validate:"omitempty,max=200"`
	EmergencyPhone      *string `json:"emergency_phone,omitempty"       validate:"omitempty,min=5,max=32"`
	Notes               *string `json:"notes,omitempty"                 validate:"omitempty,max=2000"`
	MembershipPlanID    *string `json:"membership_plan_id,omitempty"    validate:"omitempty,uuid"`
	MembershipStartDate *string `json:"membership_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EditMemberRequest replaces the editable fields. Version must match the
// stored row. RegistrationDate is accepted but never written.
type EditMemberRequest struct {
	FirstName           string     `json:"first_name"                      validate:"required,min=1,max=100"`
	LastName            string     `json:"last_name"                       validate:"required,min=1,max=100"`
	Email               string     `json:"email"                           validate:"required,email,max=255"`
	PhoneNumber         string     `json:"phone_number"                    validate:"required,min=5,max=32"`
	DateOfBirth         *string    `json:"date_of_birth,omitempty"         validate:"omitempty,datetime=2006-01-02"`
	Address             *string    `json:"address,omitempty"               validate:"omitempty,max=500"`
	EmergencyContact    *string    `json:"emergency_contact,omitempty"     validate:"omitempty,max=200"`
	EmergencyPhone      *string    `json:"emergency_phone,omitempty"       validate:"omitempty,min=5,max=32"`
	Notes               *string    `json:"notes,omitempty"                 validate:"omitempty,max=2000"`
	MembershipPlanID    *string    `json:"membership_plan_id,omitempty"    validate:"omitempty,uuid"`
	MembershipStartDate *string    `json:"membership_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MembershipEndDate   *string    `json:"membership_end_date,omitempty"   validate:"omitempty,datetime=2006-01-02"`
	IsActive            bool       `json:"is_active"`
	RegistrationDate    *time.Time `json:"registration_date,omitempty"`
	Version             int        `json:"version"                         validate:"required,gt=0"`
}

type RenewMembershipRequest struct {
	MembershipPlanID string `json:"membership_plan_id" validate:"required,uuid"`
}

type MemberResponse struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number"`
	DateOfBirth         *string   `json:"date_of_birth,omitempty"`
	Address             *string   `json:"address,omitempty"`
	EmergencyContact    *string   `json:"emergency_contact,omitempty"`
	EmergencyPhone      *string   `json:"emergency_phone,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	RegistrationDate    time.Time `json:"registration_date"`
	MembershipStartDate *string   `json:"membership_start_date,omitempty"`
	MembershipEndDate   *string   `json:"membership_end_date,omitempty"`
	IsActive            bool      `json:"is_active"`
	MembershipPlanID    *string   `json:"membership_plan_id,omitempty"`
	PlanName            *string   `json:"plan_name,omitempty"`
	HasActiveMembership bool      `json:"has_active_membership"`
	HasPaymentDue       bool      `json:"has_payment_due"`
	Version             int       `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type SearchResult struct {
	ID                  string  `json:"id"`
	FullName            string  `json:"full_name"`
	Email               string  `json:"email"`
	MembershipEndDate   *string `json:"membership_end_date,omitempty"`
	HasActiveMembership bool    `json:"has_active_membership"`
}

type SearchResponse struct {
	Members []SearchResult `json:"members"`
}

type DetailResponse struct {
	Member      MemberResponse      `json:"member"`
	Attendances []AttendanceSummary `json:"recent_attendances"`
	Payments    []PaymentSummary    `json:"recent_payments"`
}

type Detail struct {
	Member      *Member
	Attendances []AttendanceSummary
	Payments    []PaymentSummary
}

type ListMembersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Status   Status `json:"status"`
}

func (p *ListMembersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListMembersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToMemberResponse(m *Member, today time.Time) MemberResponse {
	return MemberResponse{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		FullName:            m.FullName(),
		Email:               m.Email,
		PhoneNumber:         m.PhoneNumber,
		DateOfBirth:         formatDate(m.DateOfBirth),
		Address:             m.Address,
		EmergencyContact:    m.EmergencyContact,
		EmergencyPhone:      m.EmergencyPhone,
		Notes:               m.Notes,
		RegistrationDate:    m.RegistrationDate,
		MembershipStartDate: formatDate(m.MembershipStartDate),
		MembershipEndDate:   formatDate(m.MembershipEndDate),
		IsActive:            m.IsActive,
		MembershipPlanID:    m.MembershipPlanID,
		PlanName:            m.PlanName,
		HasActiveMembership: m.HasActiveMembership(today),
		HasPaymentDue:       m.HasPaymentDue(today),
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func ToMemberResponseList(members []Member, today time.Time) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ToMemberResponse(&members[i], today))
	}
	return responses
}

func ToSearchResults(members []Member, today time.Time) []SearchResult {
	results := make([]SearchResult, 0, len(members))
	for i := range members {
		m := &members[i]
		results = append(results, SearchResult{
			ID:                  m.ID,
			FullName:            m.FullName(),
			Email:               m.Email,
			MembershipEndDate:   formatDate(m.MembershipEndDate),
			HasActiveMembership: m.HasActiveMembership(today),
		})
	}
	return results
}

func ToDetailResponse(d *Detail, today time.Time) DetailResponse {
	return DetailResponse{
		Member:      ToMemberResponse(d.Member, today),
		Attendances: d.Attendances,
		Payments:    d.Payments,
	}
}

// ParseDate reads an optional YYYY-MM-DD value in loc.
func ParseDate(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(DateLayout, *s, loc)
	if err != nil {
		return nil, core.Validation("invalid date format, please use YYYY-MM-DD")
	}

	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
