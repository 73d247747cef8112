// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/membership"
)

type Repository interface {
	MemberCounts(ctx context.Context, today time.Time) (MemberCounts, error)
	AttendanceCounts(ctx context.Context, from, to time.Time) (AttendanceCounts, error)
	Revenue(ctx context.Context, from, to time.Time) (int64, error)
	RecentCheckIns(ctx context.Context, from, to time.Time, limit int) ([]CheckInRow, error)
	DueMembers(ctx context.Context, today time.Time, limit int) ([]DueMemberRow, error)
	RecentPayments(ctx context.Context, limit int) ([]PaymentRow, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func sqlDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *repository) MemberCounts(ctx context.Context, today time.Time) (MemberCounts, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active AND membership_end_date >= $1::date) AS active,
			COUNT(*) FILTER (WHERE membership_end_date < $1::date) AS expired,
			COUNT(*) FILTER (
				WHERE is_active AND membership_end_date BETWEEN $1::date AND $2::date
			) AS payment_due
		FROM members`

	var c MemberCounts
	err := r.db.GetContext(ctx, &c, query, sqlDate(today), sqlDate(membership.DueBy(today)))
	if err != nil {
		return c, fmt.Errorf("count members: %w", err)
	}

	return c, nil
}

func (r *repository) AttendanceCounts(ctx context.Context, from, to time.Time) (AttendanceCounts, error) {
	query := `
		SELECT
			COUNT(*) AS today,
			COUNT(*) FILTER (WHERE check_out_time IS NULL) AS inside
		FROM attendances
		WHERE check_in_time >= $1 AND check_in_time < $2`

	var c AttendanceCounts
	if err := r.db.GetContext(ctx, &c, query, from, to); err != nil {
		return c, fmt.Errorf("count attendances: %w", err)
	}

	return c, nil
}

func (r *repository) Revenue(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE status = 'completed' AND payment_date >= $1 AND payment_date < $2`

	var total int64
	if err := r.db.GetContext(ctx, &total, query, from, to); err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}

	return total, nil
}

func (r *repository) RecentCheckIns(
	ctx context.Context,
	from, to time.Time,
	limit int,
) ([]CheckInRow, error) {
	query := `
		SELECT a.id, a.member_id, m.first_name || ' ' || m.last_name AS member_name,
		       a.check_in_time, a.check_out_time
		FROM attendances a
		JOIN members m ON m.id = a.member_id
		WHERE a.check_in_time >= $1 AND a.check_in_time < $2
		ORDER BY a.check_in_time DESC
		LIMIT $3`

	rows := []CheckInRow{}
	if err := r.db.SelectContext(ctx, &rows, query, from, to, limit); err != nil {
		return nil, fmt.Errorf("recent check-ins: %w", err)
	}

	return rows, nil
}

func (r *repository) DueMembers(ctx context.Context, today time.Time, limit int) ([]DueMemberRow, error) {
	query := `
		SELECT m.id, m.first_name || ' ' || m.last_name AS full_name, m.email,
		       m.phone_number, m.membership_end_date, p.name AS plan_name
		FROM members m
		LEFT JOIN membership_plans p ON p.id = m.membership_plan_id
		WHERE m.is_active AND m.membership_end_date BETWEEN $1::date AND $2::date
		ORDER BY m.membership_end_date ASC, m.last_name ASC
		LIMIT $3`

	rows := []DueMemberRow{}
	err := r.db.SelectContext(ctx, &rows, query,
		sqlDate(today), sqlDate(membership.DueBy(today)), limit)
	if err != nil {
		return nil, fmt.Errorf("due members: %w", err)
	}

	for i := range rows {
		rows[i].EndDate = sqlDate(rows[i].MembershipEndDate)
	}

	return rows, nil
}

func (r *repository) RecentPayments(ctx context.Context, limit int) ([]PaymentRow, error) {
	query := `
		SELECT pay.id, pay.member_id, m.first_name || ' ' || m.last_name AS member_name,
		       pay.amount_cents, pay.payment_method, pay.payment_date, p.name AS plan_name
		FROM payments pay
		JOIN members m ON m.id = pay.member_id
		LEFT JOIN membership_plans p ON p.id = pay.membership_plan_id
		WHERE pay.status = 'completed'
		ORDER BY pay.payment_date DESC
		LIMIT $1`

	rows := []PaymentRow{}
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}

	return rows, nil
}
