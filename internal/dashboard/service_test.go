// AngelaMos | 2026
// service_test.go

package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/dashboard"
)

var now = time.Date(2026, time.March, 10, 16, 30, 0, 0, time.UTC)

type fakeRepo struct {
	calls int
	fail  error

	attendanceFrom, attendanceTo time.Time
	revenueFrom, revenueTo       time.Time
}

func (f *fakeRepo) MemberCounts(context.Context, time.Time) (dashboard.MemberCounts, error) {
	f.calls++
	if f.fail != nil {
		return dashboard.MemberCounts{}, f.fail
	}
	return dashboard.MemberCounts{Total: 40, Active: 31, Expired: 6, PaymentDue: 4}, nil
}

func (f *fakeRepo) AttendanceCounts(_ context.Context, from, to time.Time) (dashboard.AttendanceCounts, error) {
	f.attendanceFrom, f.attendanceTo = from, to
	return dashboard.AttendanceCounts{Today: 12, Inside: 3}, nil
}

func (f *fakeRepo) Revenue(_ context.Context, from, to time.Time) (int64, error) {
	f.revenueFrom, f.revenueTo = from, to
	return 123400, nil
}

func (f *fakeRepo) RecentCheckIns(context.Context, time.Time, time.Time, int) ([]dashboard.CheckInRow, error) {
	return []dashboard.CheckInRow{{ID: "a1", MemberName: "Ada King", CheckInTime: now}}, nil
}

func (f *fakeRepo) DueMembers(context.Context, time.Time, int) ([]dashboard.DueMemberRow, error) {
	return []dashboard.DueMemberRow{{ID: "m1", FullName: "Bo Hart", EndDate: "2026-03-12"}}, nil
}

func (f *fakeRepo) RecentPayments(context.Context, int) ([]dashboard.PaymentRow, error) {
	return []dashboard.PaymentRow{{ID: "p1", AmountCents: 5000}}, nil
}

func newCache(t *testing.T) (*miniredis.Miniredis, *core.JSONCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, core.NewJSONCache(client, dashboard.CachePrefix)
}

func TestSummaryComputesFigures(t *testing.T) {
	repo := &fakeRepo{}
	svc := dashboard.NewService(repo, nil, 0, core.FixedClock(now))

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", s.Date)
	assert.Equal(t, 40, s.TotalMembers)
	assert.Equal(t, 31, s.ActiveMembers)
	assert.Equal(t, 6, s.ExpiredMembers)
	assert.Equal(t, 4, s.PaymentDueMembers)
	assert.Equal(t, 12, s.TodayCheckIns)
	assert.Equal(t, 3, s.CurrentlyInside)
	assert.Equal(t, int64(123400), s.MonthRevenueCents)
	assert.Len(t, s.RecentCheckIns, 1)
	assert.Len(t, s.DueMembers, 1)
	assert.Len(t, s.RecentPayments, 1)

	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), repo.attendanceFrom)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), repo.attendanceTo)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), repo.revenueFrom)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), repo.revenueTo)
}

func TestSummaryUsesCache(t *testing.T) {
	mr, cache := newCache(t)
	repo := &fakeRepo{}
	svc := dashboard.NewService(repo, cache, 30*time.Second, core.FixedClock(now))
	ctx := context.Background()

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("dashboard:summary:2026-03-10"))
	assert.Equal(t, 30*time.Second, mr.TTL("dashboard:summary:2026-03-10"))

	second, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first.ActiveMembers, second.ActiveMembers)
	assert.Equal(t, first.DueMembers[0].EndDate, second.DueMembers[0].EndDate)

	mr.FastForward(31 * time.Second)

	_, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestSummaryZeroTTLDisablesCache(t *testing.T) {
	mr, cache := newCache(t)
	repo := &fakeRepo{}
	svc := dashboard.NewService(repo, cache, 0, core.FixedClock(now))

	for range 2 {
		_, err := svc.Summary(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 2, repo.calls)
	assert.Empty(t, mr.Keys())
}

func TestSummarySurvivesCacheOutage(t *testing.T) {
	mr, cache := newCache(t)
	repo := &fakeRepo{}
	svc := dashboard.NewService(repo, cache, time.Minute, core.FixedClock(now))

	mr.Close()

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, s.TotalMembers)
}

func TestSummaryStoreError(t *testing.T) {
	repo := &fakeRepo{fail: errors.New("connection refused")}
	svc := dashboard.NewService(repo, nil, 0, core.FixedClock(now))

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	mr, cache := newCache(t)
	svc := dashboard.NewService(&fakeRepo{}, cache, time.Minute, core.FixedClock(now))

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NoError(t, mr.Set("other:key", "keep"))

	removed, err := svc.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, mr.Exists("dashboard:summary:2026-03-10"))
	assert.True(t, mr.Exists("other:key"))
}
