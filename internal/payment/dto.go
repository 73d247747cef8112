// AngelaMos | 2026
// dto.go

package payment

import (
	"time"
)

type CreatePaymentRequest struct {
	MemberID             string  `json:"member_id"                       validate:"required,uuid"`
	AmountCents          int64   `json:"amount_cents"                    validate:"gte=0"`
	Method               Method  `json:"payment_method"                  validate:"required,oneof=cash credit_card debit_card bank_transfer other"`
	Status               Status  `json:"status"                          validate:"required,oneof=pending completed failed refunded"`
	MembershipPlanID     *string `json:"membership_plan_id,omitempty"    validate:"omitempty,uuid"`
	TransactionReference *string `json:"transaction_reference,omitempty" validate:"omitempty,max=255"`
	Notes                *string `json:"notes,omitempty"                 validate:"omitempty,max=2000"`
}

// EditPaymentRequest only touches bookkeeping fields. Amount, member and
// plan are fixed once recorded.
type EditPaymentRequest struct {
	Status               *Status `json:"status,omitempty"                validate:"omitempty,oneof=pending completed failed refunded"`
	TransactionReference *string `json:"transaction_reference,omitempty" validate:"omitempty,max=255"`
	Notes                *string `json:"notes,omitempty"                 validate:"omitempty,max=2000"`
}

type PaymentResponse struct {
	ID                   string    `json:"id"`
	MemberID             string    `json:"member_id"`
	MemberName           string    `json:"member_name,omitempty"`
	AmountCents          int64     `json:"amount_cents"`
	PaymentDate          time.Time `json:"payment_date"`
	Method               Method    `json:"payment_method"`
	Status               Status    `json:"status"`
	TransactionReference *string   `json:"transaction_reference,omitempty"`
	Notes                *string   `json:"notes,omitempty"`
	MembershipPlanID     *string   `json:"membership_plan_id,omitempty"`
	PlanName             *string   `json:"plan_name,omitempty"`
	MembershipExtended   bool      `json:"membership_extended"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ListResponse struct {
	Payments            []PaymentResponse `json:"payments"`
	TotalCompletedCents int64             `json:"total_completed_cents"`
}

// Prefill is the suggested form for a new payment from a member's
// current plan.
type Prefill struct {
	MemberID         string  `json:"member_id"`
	MemberName       string  `json:"member_name"`
	MembershipPlanID *string `json:"membership_plan_id,omitempty"`
	PlanName         *string `json:"plan_name,omitempty"`
	AmountCents      int64   `json:"amount_cents"`
	Method           Method  `json:"payment_method"`
	Status           Status  `json:"status"`
}

type ListPaymentsParams struct {
	Page     int
	PageSize int
	From     *time.Time
	To       *time.Time
	MemberID string
	Status   Status
}

func (p *ListPaymentsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListPaymentsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ListResult struct {
	Payments            []Payment
	Total               int
	TotalCompletedCents int64
}

func ToPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID,
		MemberID:             p.MemberID,
		MemberName:           p.MemberName,
		AmountCents:          p.AmountCents,
		PaymentDate:          p.PaymentDate,
		Method:               p.Method,
		Status:               p.Status,
		TransactionReference: p.TransactionReference,
		Notes:                p.Notes,
		MembershipPlanID:     p.MembershipPlanID,
		PlanName:             p.PlanName,
		MembershipExtended:   p.MembershipExtended,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses
}
