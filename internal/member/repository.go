// AngelaMos | 2026
// repository.go

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/membership"
)

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListMembersParams, today time.Time) ([]Member, int, error)
	Search(ctx context.Context, term string, limit int) ([]Member, error)
	ListDue(ctx context.Context, today time.Time, limit int) ([]Member, error)
	ListCheckInCandidates(ctx context.Context, today time.Time) ([]Member, error)
	RecentAttendances(ctx context.Context, memberID string, limit int) ([]AttendanceSummary, error)
	RecentPayments(ctx context.Context, memberID string, limit int) ([]PaymentSummary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const memberColumns = `
	m.id, m.first_name, m.last_name, m.email, m.phone_number,
	m.date_of_birth, m.address, m.emergency_contact, m.emergency_phone,
	m.notes, m.registration_date, m.membership_start_date,
	m.membership_end_date, m.is_active, m.membership_plan_id,
	p.name AS plan_name, m.version, m.created_at, m.updated_at`

const memberFrom = `
	FROM members m
	LEFT JOIN membership_plans p ON p.id = m.membership_plan_id`

// sqlDate renders a calendar date for ::date parameters so the driver
// never shifts it through a timezone conversion.
func sqlDate(t time.Time) string {
	return t.Format(DateLayout)
}

func sqlDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := sqlDate(*t)
	return &s
}

func (r *repository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (
			id, first_name, last_name, email, phone_number, date_of_birth,
			address, emergency_contact, emergency_phone, notes,
			registration_date, membership_start_date, membership_end_date,
			is_active, membership_plan_id
		) VALUES (
			$1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11,
			$12::date, $13::date, $14, $15
		)
		RETURNING version, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		member.ID,
		member.FirstName,
		member.LastName,
		member.Email,
		member.PhoneNumber,
		sqlDatePtr(member.DateOfBirth),
		member.Address,
		member.EmergencyContact,
		member.EmergencyPhone,
		member.Notes,
		member.RegistrationDate,
		sqlDatePtr(member.MembershipStartDate),
		sqlDatePtr(member.MembershipEndDate),
		member.IsActive,
		member.MembershipPlanID,
	)
	if err := row.Scan(&member.Version, &member.CreatedAt, &member.UpdatedAt); err != nil {
		if core.IsCheckViolation(err, "members_membership_window_check") {
			return fmt.Errorf("create member: %w", core.ErrInvalidInput)
		}
		if core.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("create member: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + memberFrom + ` WHERE m.id = $1`

	var member Member
	err := r.db.GetContext(ctx, &member, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}

	return &member, nil
}

// GetByIDForUpdate locks the member row until the surrounding transaction
// ends. Only meaningful when the repository was built on a tx.
func (r *repository) GetByIDForUpdate(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + memberFrom +
		` WHERE m.id = $1 FOR UPDATE OF m`

	var member Member
	err := r.db.GetContext(ctx, &member, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock member: %w", err)
	}

	return &member, nil
}

// Update writes every mutable column when member.Version still matches
// the stored row, then bumps the version. registration_date is never
// written.
func (r *repository) Update(ctx context.Context, member *Member) error {
	query := `
		UPDATE members
		SET first_name = $3, last_name = $4, email = $5, phone_number = $6,
		    date_of_birth = $7::date, address = $8, emergency_contact = $9,
		    emergency_phone = $10, notes = $11,
		    membership_start_date = $12::date, membership_end_date = $13::date,
		    is_active = $14, membership_plan_id = $15,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		member.ID,
		member.Version,
		member.FirstName,
		member.LastName,
		member.Email,
		member.PhoneNumber,
		sqlDatePtr(member.DateOfBirth),
		member.Address,
		member.EmergencyContact,
		member.EmergencyPhone,
		member.Notes,
		sqlDatePtr(member.MembershipStartDate),
		sqlDatePtr(member.MembershipEndDate),
		member.IsActive,
		member.MembershipPlanID,
	)

	err := row.Scan(&member.Version, &member.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.staleOrMissing(ctx, member.ID)
	}
	if err != nil {
		if core.IsCheckViolation(err, "members_membership_window_check") {
			return fmt.Errorf("update member: %w", core.ErrInvalidInput)
		}
		if core.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("update member: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update member: %w", err)
	}

	return nil
}

func (r *repository) staleOrMissing(ctx context.Context, id string) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if !exists {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	return fmt.Errorf("update member: %w", core.ErrConflict)
}

// Delete removes the member. Attendances and payments go with it via
// ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete member: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListMembersParams,
	today time.Time,
) ([]Member, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(m.first_name ILIKE $%d OR m.last_name ILIKE $%d OR m.email ILIKE $%d OR m.phone_number ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	switch params.Status {
	case StatusActive:
		conditions = append(conditions, fmt.Sprintf(
			"m.is_active AND m.membership_end_date >= $%d::date", argIdx))
		args = append(args, sqlDate(today))
		argIdx++
	case StatusExpired:
		conditions = append(conditions, fmt.Sprintf(
			"m.membership_end_date < $%d::date", argIdx))
		args = append(args, sqlDate(today))
		argIdx++
	case StatusInactive:
		conditions = append(conditions, "NOT m.is_active")
	case StatusPaymentDue:
		conditions = append(conditions, fmt.Sprintf(
			"m.membership_end_date BETWEEN $%d::date AND $%d::date", argIdx, argIdx+1))
		args = append(args, sqlDate(today), sqlDate(membership.DueBy(today)))
		argIdx += 2
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM members m WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY m.last_name ASC, m.first_name ASC
		LIMIT $%d OFFSET $%d`,
		memberColumns, memberFrom, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}

	return members, total, nil
}

func (r *repository) Search(ctx context.Context, term string, limit int) ([]Member, error) {
	query := `SELECT ` + memberColumns + memberFrom + `
		WHERE m.is_active
		  AND (m.first_name ILIKE $1 OR m.last_name ILIKE $1
		       OR m.email ILIKE $1 OR m.phone_number ILIKE $1)
		ORDER BY m.last_name ASC, m.first_name ASC
		LIMIT $2`

	members := []Member{}
	pattern := "%" + core.EscapeLike(term) + "%"
	if err := r.db.SelectContext(ctx, &members, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	return members, nil
}

func (r *repository) ListDue(ctx context.Context, today time.Time, limit int) ([]Member, error) {
	query := `SELECT ` + memberColumns + memberFrom + `
		WHERE m.is_active
		  AND m.membership_end_date BETWEEN $1::date AND $2::date
		ORDER BY m.membership_end_date ASC, m.last_name ASC
		LIMIT $3`

	members := []Member{}
	err := r.db.SelectContext(ctx, &members, query,
		sqlDate(today), sqlDate(membership.DueBy(today)), limit)
	if err != nil {
		return nil, fmt.Errorf("list due members: %w", err)
	}

	return members, nil
}

func (r *repository) ListCheckInCandidates(ctx context.Context, today time.Time) ([]Member, error) {
	query := `SELECT ` + memberColumns + memberFrom + `
		WHERE m.is_active AND m.membership_end_date >= $1::date
		ORDER BY m.last_name ASC, m.first_name ASC`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, sqlDate(today)); err != nil {
		return nil, fmt.Errorf("list check-in candidates: %w", err)
	}

	return members, nil
}

func (r *repository) RecentAttendances(
	ctx context.Context,
	memberID string,
	limit int,
) ([]AttendanceSummary, error) {
	query := `
		SELECT id, check_in_time, check_out_time, notes
		FROM attendances
		WHERE member_id = $1
		ORDER BY check_in_time DESC
		LIMIT $2`

	rows := []AttendanceSummary{}
	if err := r.db.SelectContext(ctx, &rows, query, memberID, limit); err != nil {
		return nil, fmt.Errorf("recent attendances: %w", err)
	}

	return rows, nil
}

func (r *repository) RecentPayments(
	ctx context.Context,
	memberID string,
	limit int,
) ([]PaymentSummary, error) {
	query := `
		SELECT pay.id, pay.amount_cents, pay.payment_date, pay.payment_method,
		       pay.status, p.name AS plan_name
		FROM payments pay
		LEFT JOIN membership_plans p ON p.id = pay.membership_plan_id
		WHERE pay.member_id = $1
		ORDER BY pay.payment_date DESC
		LIMIT $2`

	rows := []PaymentSummary{}
	if err := r.db.SelectContext(ctx, &rows, query, memberID, limit); err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}

	return rows, nil
}
