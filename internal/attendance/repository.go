// AngelaMos | 2026
// repository.go

package attendance

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

const openAttendanceIndex = "attendances_one_open_per_member"

type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	CheckOut(ctx context.Context, id string, at time.Time) (*Attendance, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListAttendanceParams) ([]Attendance, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const attendanceColumns = `
	a.id, a.member_id, m.first_name || ' ' || m.last_name AS member_name,
	a.check_in_time, a.check_out_time, a.notes`

const attendanceFrom = `
	FROM attendances a
	JOIN members m ON m.id = a.member_id`

// Create inserts an open attendance. A second open row for the same
// member trips the partial unique index and is reported as ErrConflict.
func (r *repository) Create(ctx context.Context, a *Attendance) error {
	query := `
		INSERT INTO attendances (id, member_id, check_in_time, notes)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.MemberID, a.CheckInTime, a.Notes)
	if err != nil {
		if core.IsUniqueViolation(err, openAttendanceIndex) {
			return fmt.Errorf("create attendance: %w", core.ErrConflict)
		}
		if core.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("create attendance: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create attendance: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Attendance, error) {
	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`

	var a Attendance
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get attendance: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	return &a, nil
}

// CheckOut closes the record only while it is still open. A row that
// exists but is already closed yields ErrConflict.
func (r *repository) CheckOut(ctx context.Context, id string, at time.Time) (*Attendance, error) {
	query := `
		UPDATE attendances
		SET check_out_time = GREATEST($2, check_in_time)
		WHERE id = $1 AND check_out_time IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return nil, fmt.Errorf("check out: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check out: %w", err)
	}

	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, fmt.Errorf("check out: %w", core.ErrConflict)
	}

	return a, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete attendance: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListAttendanceParams,
) ([]Attendance, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.From != nil {
		from, _ := membership.DayRange(*params.From, *params.From)
		conditions = append(conditions, fmt.Sprintf("a.check_in_time >= $%d", argIdx))
		args = append(args, from)
		argIdx++
	}

	if params.To != nil {
		_, to := membership.DayRange(*params.To, *params.To)
		conditions = append(conditions, fmt.Sprintf("a.check_in_time < $%d", argIdx))
		args = append(args, to)
		argIdx++
	}

	if params.MemberID != "" {
		conditions = append(conditions, fmt.Sprintf("a.member_id = $%d", argIdx))
		args = append(args, params.MemberID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendances: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY a.check_in_time DESC
		LIMIT $%d OFFSET $%d`,
		attendanceColumns, attendanceFrom, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	rows := []Attendance{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendances: %w", err)
	}

	return rows, total, nil
}
