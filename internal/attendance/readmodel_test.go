// AngelaMos | 2026
// readmodel_test.go

package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/attendance"
	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/dashboard"
)

// visitCounts reads the dashboard visit figures straight from the
// attendance fake so the summary tracks real writes.
type visitCounts struct {
	repo *fakeRepo
}

func (v visitCounts) MemberCounts(context.Context, time.Time) (dashboard.MemberCounts, error) {
	return dashboard.MemberCounts{}, nil
}

func (v visitCounts) AttendanceCounts(_ context.Context, from, to time.Time) (dashboard.AttendanceCounts, error) {
	v.repo.mu.Lock()
	defer v.repo.mu.Unlock()

	var c dashboard.AttendanceCounts
	for _, a := range v.repo.rows {
		if !a.CheckInTime.Before(from) && a.CheckInTime.Before(to) {
			c.Today++
		}
		if a.IsOpen() {
			c.Inside++
		}
	}
	return c, nil
}

func (v visitCounts) Revenue(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (v visitCounts) RecentCheckIns(context.Context, time.Time, time.Time, int) ([]dashboard.CheckInRow, error) {
	return nil, nil
}

func (v visitCounts) DueMembers(context.Context, time.Time, int) ([]dashboard.DueMemberRow, error) {
	return nil, nil
}

func (v visitCounts) RecentPayments(context.Context, int) ([]dashboard.PaymentRow, error) {
	return nil, nil
}

func newCachedDashboard(t *testing.T, repo *fakeRepo) *dashboard.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := core.NewJSONCache(client, dashboard.CachePrefix)
	return dashboard.NewService(visitCounts{repo: repo}, cache, 30*time.Second, clock)
}

func TestDashboardReflectsCheckInAndOut(t *testing.T) {
	repo := newFakeRepo()
	dash := newCachedDashboard(t, repo)
	svc := newService(repo)
	svc.InvalidateOnWrite(dash)
	ctx := context.Background()

	before, err := dash.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, before.TodayCheckIns)

	res, err := svc.CheckIn(ctx, attendance.CheckInRequest{MemberID: activeID})
	require.NoError(t, err)

	after, err := dash.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.TodayCheckIns)
	assert.Equal(t, 1, after.CurrentlyInside)

	_, err = svc.CheckOut(ctx, res.Attendance.ID)
	require.NoError(t, err)

	out, err := dash.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TodayCheckIns)
	assert.Zero(t, out.CurrentlyInside)

	require.NoError(t, svc.Delete(ctx, res.Attendance.ID))

	gone, err := dash.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, gone.TodayCheckIns)
}

type brokenInvalidator struct{}

func (brokenInvalidator) Invalidate(context.Context) (int, error) {
	return 0, errors.New("redis: connection refused")
}

func TestInvalidationFailureKeepsWrite(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	svc.InvalidateOnWrite(brokenInvalidator{})

	res, err := svc.QuickCheckIn(context.Background(), activeID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, repo.rows, 1)
}
