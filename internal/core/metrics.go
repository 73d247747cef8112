// AngelaMos | 2026
// metrics.go

package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ExtensionSourceRenewal = "renewal"
	ExtensionSourcePayment = "payment"
)

var (
	CheckInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_check_ins_total",
			Help: "Check-ins recorded, by entry point",
		},
		[]string{"mode"},
	)
	CheckOutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_check_outs_total",
			Help: "Attendance records closed",
		},
	)
	PaymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_payments_total",
			Help: "Payments recorded, by status",
		},
		[]string{"status"},
	)
	PaymentAmountCents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_payment_amount_cents_total",
			Help: "Sum of recorded payment amounts in cents, by status",
		},
		[]string{"status"},
	)
	MembershipExtensionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_membership_extensions_total",
			Help: "Membership windows extended, by source",
		},
		[]string{"source"},
	)
	DashboardCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_dashboard_cache_total",
			Help: "Dashboard cache lookups, by result",
		},
		[]string{"result"},
	)
)

// RegisterMetrics adds the domain collectors to reg. Call once from main.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		CheckInsTotal,
		CheckOutsTotal,
		PaymentsTotal,
		PaymentAmountCents,
		MembershipExtensionsTotal,
		DashboardCacheTotal,
	)
}
