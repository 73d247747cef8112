// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/membership"
)

// CachePrefix namespaces summary keys in Redis.
const CachePrefix = "dashboard:"

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Purge(ctx context.Context) (int, error)
}

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	clock core.Clock
}

// NewService builds the aggregator. A nil cache or a zero ttl disables
// caching.
func NewService(repo Repository, cache Cache, ttl time.Duration, clock core.Clock) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, clock: clock}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func cacheKey(today time.Time) string {
	return "summary:" + today.Format("2006-01-02")
}

// Summary returns today's figures, served from cache while fresh. Cache
// failures fall through to the store.
func (s *Service) Summary(ctx context.Context) (summary *Summary, err error) {
	ctx, span := core.StartSpan(ctx, "dashboard.summary")
	defer func() { core.EndSpan(span, err) }()

	today := s.clock.Today()
	key := cacheKey(today)

	if s.cacheEnabled() {
		var cached Summary
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			core.DashboardCacheTotal.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, nil
		case errors.Is(err, core.ErrCacheMiss):
			core.DashboardCacheTotal.WithLabelValues("miss").Inc()
		default:
			core.DashboardCacheTotal.WithLabelValues("error").Inc()
			slog.WarnContext(ctx, "dashboard cache read failed", "error", err)
		}
	}

	summary, err = s.compute(ctx, today)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			slog.WarnContext(ctx, "dashboard cache write failed", "error", err)
		}
	}

	return summary, nil
}

func (s *Service) compute(ctx context.Context, today time.Time) (*Summary, error) {
	dayStart, dayEnd := membership.DayRange(today, today)

	members, err := s.repo.MemberCounts(ctx, today)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.AttendanceCounts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.Revenue(ctx, membership.MonthStart(today), membership.NextMonthStart(today))
	if err != nil {
		return nil, err
	}

	checkIns, err := s.repo.RecentCheckIns(ctx, dayStart, dayEnd, recentCheckInsLimit)
	if err != nil {
		return nil, err
	}

	due, err := s.repo.DueMembers(ctx, today, dueMembersLimit)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.RecentPayments(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Date:              today.Format("2006-01-02"),
		TotalMembers:      members.Total,
		ActiveMembers:     members.Active,
		ExpiredMembers:    members.Expired,
		PaymentDueMembers: members.PaymentDue,
		TodayCheckIns:     visits.Today,
		CurrentlyInside:   visits.Inside,
		MonthRevenueCents: revenue,
		RecentCheckIns:    checkIns,
		DueMembers:        due,
		RecentPayments:    payments,
		GeneratedAt:       s.clock.Now(),
	}, nil
}

// Invalidate drops every cached summary and returns how many were removed.
func (s *Service) Invalidate(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.Purge(ctx)
}
