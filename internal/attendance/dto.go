// AngelaMos | 2026
// dto.go

package attendance

import (
	"time"

	"github.com/carterperez-dev/gym-membership/internal/member"
)

const clockLayout = "15:04"

type CheckInRequest struct {
	MemberID string  `json:"member_id"       validate:"required,uuid"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type QuickSearchRequest struct {
	SearchTerm string `json:"search_term" validate:"max=100"`
}

type QuickCheckInRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

type AttendanceResponse struct {
	ID              string     `json:"id"`
	MemberID        string     `json:"member_id"`
	MemberName      string     `json:"member_name,omitempty"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	IsCheckedIn     bool       `json:"is_checked_in"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

type CheckInResult struct {
	Attendance *Attendance
	Message    string
}

type CheckInResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Message    string             `json:"message"`
}

// QuickCheckInResult is the front-desk kiosk reply. Business failures are
// reported through Success and Message rather than an error status.
type QuickCheckInResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	CheckInTime string `json:"check_in_time,omitempty"`
}

type QuickSearchResult struct {
	Success bool
	Message string
	Members []member.Member
}

type QuickSearchResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Members []member.SearchResult `json:"members"`
}

type ListAttendanceParams struct {
	Page     int
	PageSize int
	From     *time.Time
	To       *time.Time
	MemberID string
}

func (p *ListAttendanceParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListAttendanceParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToAttendanceResponse(a *Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		MemberID:     a.MemberID,
		MemberName:   a.MemberName,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Notes:        a.Notes,
		IsCheckedIn:  a.IsOpen(),
	}
	if d, ok := a.Duration(); ok {
		minutes := int(d.Minutes())
		resp.DurationMinutes = &minutes
	}
	return resp
}

func ToAttendanceResponseList(rows []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, ToAttendanceResponse(&rows[i]))
	}
	return responses
}
