// AngelaMos | 2026
// entity.go

package member

import (
	"time"

	"github.com/carterperez-dev/gym-membership/internal/membership"
)

type Member struct {
	ID                  string     `db:"id"`
	FirstName           string     `db:"first_name"`
	LastName            string     `db:"last_name"`
	Email               string     `db:"email"`
	PhoneNumber         string     `db:"phone_number"`
	DateOfBirth         *time.Time `db:"date_of_birth"`
	Address             *string    `db:"address"`
	EmergencyContact    *string    `db:"emergency_contact"`
	EmergencyPhone      *string    `db:"emergency_phone"`
	Notes               *string    `db:"notes"`
	RegistrationDate    time.Time  `db:"registration_date"`
	MembershipStartDate *time.Time `db:"membership_start_date"`
	MembershipEndDate   *time.Time `db:"membership_end_date"`
	IsActive            bool       `db:"is_active"`
	MembershipPlanID    *string    `db:"membership_plan_id"`
	PlanName            *string    `db:"plan_name"`
	Version             int        `db:"version"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *Member) HasActiveMembership(today time.Time) bool {
	return membership.HasActiveWindow(m.MembershipEndDate, today)
}

func (m *Member) HasPaymentDue(today time.Time) bool {
	return membership.HasPaymentDue(m.MembershipEndDate, today)
}

// CanCheckIn is true for an active member whose window has not ended.
func (m *Member) CanCheckIn(today time.Time) bool {
	return membership.IsActive(m.IsActive, m.MembershipEndDate, today)
}

// ExtendWith applies a plan's duration to the current window and
// reactivates the member.
func (m *Member) ExtendWith(planID string, durationDays int, today time.Time) membership.Window {
	w := membership.Extend(m.MembershipEndDate, today, durationDays)

	start, end := w.Start, w.End
	m.MembershipStartDate = &start
	m.MembershipEndDate = &end
	m.MembershipPlanID = &planID
	m.IsActive = true

	return w
}

type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusInactive   Status = "inactive"
	StatusPaymentDue Status = "payment_due"
)

// ParseStatus accepts the listing filter values. "paymentdue" is kept as
// an alias for older clients.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "":
		return "", true
	case string(StatusActive), string(StatusExpired), string(StatusInactive), string(StatusPaymentDue):
		return Status(s), true
	case "paymentdue":
		return StatusPaymentDue, true
	}
	return "", false
}

// AttendanceSummary and PaymentSummary are the history rows shown on a
// member's detail view.
type AttendanceSummary struct {
	ID           string     `db:"id"             json:"id"`
	CheckInTime  time.Time  `db:"check_in_time"  json:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	Notes        *string    `db:"notes"          json:"notes,omitempty"`
}

type PaymentSummary struct {
	ID          string    `db:"id"             json:"id"`
	AmountCents int64     `db:"amount_cents"   json:"amount_cents"`
	PaymentDate time.Time `db:"payment_date"   json:"payment_date"`
	Method      string    `db:"payment_method" json:"payment_method"`
	Status      string    `db:"status"         json:"status"`
	PlanName    *string   `db:"plan_name"      json:"plan_name,omitempty"`
}
