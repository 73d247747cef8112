// AngelaMos | 2026
// repository.go

package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/gym-membership/internal/core"
)

type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListPlansParams) ([]Plan, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const planColumns = `
	id, name, description, price_cents, duration_in_days, is_active,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, plan *Plan) error {
	query := `
		INSERT INTO membership_plans (
			id, name, description, price_cents, duration_in_days, is_active
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.PriceCents,
		plan.DurationInDays,
		plan.IsActive,
	)
	if err := row.Scan(&plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans WHERE id = $1`

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	return &plan, nil
}

func (r *repository) Update(ctx context.Context, plan *Plan) error {
	query := `
		UPDATE membership_plans
		SET name = $2, description = $3, price_cents = $4,
		    duration_in_days = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &plan.UpdatedAt, query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.PriceCents,
		plan.DurationInDays,
		plan.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	return nil
}

// Delete removes the plan row. Member and payment references are nulled
// by the ON DELETE SET NULL foreign keys.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM membership_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete plan: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPlansParams,
) ([]Plan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans`
	if params.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY duration_in_days, name`

	plans := []Plan{}
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}
