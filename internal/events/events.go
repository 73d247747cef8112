// AngelaMos | 2026
// events.go

// Package events publishes domain facts (check-ins, payments, membership
// extensions) for downstream consumers. Publishing is best effort: a
// failed send is logged and never rolls back the operation that caused it.
package events

import (
	"context"
	"time"
)

const (
	TopicAttendance = "attendance"
	TopicPayments   = "payments"
	TopicMembership = "memberships"
)

const (
	TypeCheckedIn          = "attendance.checked_in"
	TypeCheckedOut         = "attendance.checked_out"
	TypePaymentRecorded    = "payment.recorded"
	TypeMembershipExtended = "membership.extended"
	TypeMemberRegistered   = "member.registered"
)

type Event struct {
	Type       string    `json:"event_type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close() error
}

type nopPublisher struct{}

// Nop discards every event. Used when kafka.enabled is false.
func Nop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, Event) error { return nil }

func (nopPublisher) Close() error { return nil }

// MembershipExtended is the payload for TypeMembershipExtended.
type MembershipExtended struct {
	MemberID  string `json:"member_id"`
	PlanID    string `json:"plan_id"`
	Source    string `json:"source"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CheckedIn struct {
	AttendanceID string    `json:"attendance_id"`
	MemberID     string    `json:"member_id"`
	CheckInTime  time.Time `json:"check_in_time"`
}

type CheckedOut struct {
	AttendanceID string    `json:"attendance_id"`
	MemberID     string    `json:"member_id"`
	CheckOutTime time.Time `json:"check_out_time"`
}

type PaymentRecorded struct {
	PaymentID   string  `json:"payment_id"`
	MemberID    string  `json:"member_id"`
	PlanID      *string `json:"plan_id,omitempty"`
	AmountCents int64   `json:"amount_cents"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	Extended    bool    `json:"membership_extended"`
}

type MemberRegistered struct {
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
}
