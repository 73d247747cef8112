// AngelaMos | 2026
// entity.go

package plan

import (
	"time"
)

type Plan struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	PriceCents     int64     `db:"price_cents"`
	DurationInDays int       `db:"duration_in_days"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
