// AngelaMos | 2026
// dto.go

package dashboard

import (
	"time"
)

const (
	recentCheckInsLimit = 10
	dueMembersLimit     = 10
	recentPaymentsLimit = 5
)

type MemberCounts struct {
	Total      int `db:"total"       json:"total"`
	Active     int `db:"active"      json:"active"`
	Expired    int `db:"expired"     json:"expired"`
	PaymentDue int `db:"payment_due" json:"payment_due"`
}

type AttendanceCounts struct {
	Today  int `db:"today"  json:"today"`
	Inside int `db:"inside" json:"inside"`
}

type CheckInRow struct {
	ID           string     `db:"id"             json:"id"`
	MemberID     string     `db:"member_id"      json:"member_id"`
	MemberName   string     `db:"member_name"    json:"member_name"`
	CheckInTime  time.Time  `db:"check_in_time"  json:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
}

type DueMemberRow struct {
	ID                string    `db:"id"                  json:"id"`
	FullName          string    `db:"full_name"           json:"full_name"`
	Email             string    `db:"email"               json:"email"`
	PhoneNumber       string    `db:"phone_number"        json:"phone_number"`
	MembershipEndDate time.Time `db:"membership_end_date" json:"-"`
	EndDate           string    `db:"-"                   json:"membership_end_date"`
	PlanName          *string   `db:"plan_name"           json:"plan_name,omitempty"`
}

type PaymentRow struct {
	ID          string    `db:"id"             json:"id"`
	MemberID    string    `db:"member_id"      json:"member_id"`
	MemberName  string    `db:"member_name"    json:"member_name"`
	AmountCents int64     `db:"amount_cents"   json:"amount_cents"`
	Method      string    `db:"payment_method" json:"payment_method"`
	PaymentDate time.Time `db:"payment_date"   json:"payment_date"`
	PlanName    *string   `db:"plan_name"      json:"plan_name,omitempty"`
}

// Summary is the front-desk overview for one calendar day.
type Summary struct {
	Date              string         `json:"date"`
	TotalMembers      int            `json:"total_members"`
	ActiveMembers     int            `json:"active_members"`
	ExpiredMembers    int            `json:"expired_members"`
	PaymentDueMembers int            `json:"payment_due_members"`
	TodayCheckIns     int            `json:"today_check_ins"`
	CurrentlyInside   int            `json:"currently_checked_in"`
	MonthRevenueCents int64          `json:"month_revenue_cents"`
	RecentCheckIns    []CheckInRow   `json:"recent_check_ins"`
	DueMembers        []DueMemberRow `json:"payment_due_list"`
	RecentPayments    []PaymentRow   `json:"recent_payments"`
	GeneratedAt       time.Time      `json:"generated_at"`
}
