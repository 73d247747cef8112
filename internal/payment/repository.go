// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/membership"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListPaymentsParams) (*ListResult, error)
	ListPending(ctx context.Context, limit int) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const paymentColumns = `
	pay.id, pay.member_id, m.first_name || ' ' || m.last_name AS member_name,
	pay.amount_cents, pay.payment_date, pay.payment_method, pay.status,
	pay.transaction_reference, pay.notes, pay.membership_plan_id,
	p.name AS plan_name, pay.membership_extended, pay.created_at,
	pay.updated_at`

const paymentFrom = `
	FROM payments pay
	JOIN members m ON m.id = pay.member_id
	LEFT JOIN membership_plans p ON p.id = pay.membership_plan_id`

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (
			id, member_id, amount_cents, payment_date, payment_method, status,
			transaction_reference, notes, membership_plan_id, membership_extended
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.MemberID,
		p.AmountCents,
		p.PaymentDate,
		p.Method,
		p.Status,
		p.TransactionReference,
		p.Notes,
		p.MembershipPlanID,
		p.MembershipExtended,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if core.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("create payment: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + ` WHERE pay.id = $1`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Payment) error {
	query := `
		UPDATE payments
		SET status = $2, transaction_reference = $3, notes = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Status,
		p.TransactionReference,
		p.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete payment: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context, params ListPaymentsParams) (*ListResult, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.From != nil {
		from, _ := membership.DayRange(*params.From, *params.From)
		conditions = append(conditions, fmt.Sprintf("pay.payment_date >= $%d", argIdx))
		args = append(args, from)
		argIdx++
	}

	if params.To != nil {
		_, to := membership.DayRange(*params.To, *params.To)
		conditions = append(conditions, fmt.Sprintf("pay.payment_date < $%d", argIdx))
		args = append(args, to)
		argIdx++
	}

	if params.MemberID != "" {
		conditions = append(conditions, fmt.Sprintf("pay.member_id = $%d", argIdx))
		args = append(args, params.MemberID)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pay.status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	summaryQuery := fmt.Sprintf(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(pay.amount_cents) FILTER (WHERE pay.status = 'completed'), 0) AS completed
		FROM payments pay
		WHERE %s`, whereClause)

	var summary struct {
		Total     int   `db:"total"`
		Completed int64 `db:"completed"`
	}
	if err := r.db.GetContext(ctx, &summary, summaryQuery, args...); err != nil {
		return nil, fmt.Errorf("summarize payments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY pay.payment_date DESC
		LIMIT $%d OFFSET $%d`,
		paymentColumns, paymentFrom, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return &ListResult{
		Payments:            payments,
		Total:               summary.Total,
		TotalCompletedCents: summary.Completed,
	}, nil
}

func (r *repository) ListPending(ctx context.Context, limit int) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + `
		WHERE pay.status = 'pending'
		ORDER BY pay.payment_date ASC
		LIMIT $1`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, limit); err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}

	return payments, nil
}
