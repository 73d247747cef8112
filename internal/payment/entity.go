// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodOther        Method = "other"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID                   string    `db:"id"`
	MemberID             string    `db:"member_id"`
	MemberName           string    `db:"member_name"`
	AmountCents          int64     `db:"amount_cents"`
	PaymentDate          time.Time `db:"payment_date"`
	Method               Method    `db:"payment_method"`
	Status               Status    `db:"status"`
	TransactionReference *string   `db:"transaction_reference"`
	Notes                *string   `db:"notes"`
	MembershipPlanID     *string   `db:"membership_plan_id"`
	PlanName             *string   `db:"plan_name"`
	MembershipExtended   bool      `db:"membership_extended"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

// ExtendsMembership reports whether recording this payment should move
// the member's window forward.
func (p *Payment) ExtendsMembership() bool {
	return p.Status == StatusCompleted && p.MembershipPlanID != nil && *p.MembershipPlanID != ""
}
