// AngelaMos | 2026
// entity.go

package attendance

import (
	"time"
)

type Attendance struct {
	ID           string     `db:"id"`
	MemberID     string     `db:"member_id"`
	MemberName   string     `db:"member_name"`
	CheckInTime  time.Time  `db:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time"`
	Notes        *string    `db:"notes"`
}

func (a *Attendance) IsOpen() bool {
	return a.CheckOutTime == nil
}

// Duration is the length of a closed visit. Open visits report false.
func (a *Attendance) Duration() (time.Duration, bool) {
	if a.CheckOutTime == nil {
		return 0, false
	}
	return a.CheckOutTime.Sub(a.CheckInTime), true
}
