// AngelaMos | 2026
// service_test.go

package plan_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/plan"
)

type fakeRepo struct {
	plans map[string]plan.Plan
}

func newFakeRepo(plans ...plan.Plan) *fakeRepo {
	f := &fakeRepo{plans: map[string]plan.Plan{}}
	for _, p := range plans {
		f.plans[p.ID] = p
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, p *plan.Plan) error {
	f.plans[p.ID] = *p
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*plan.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeRepo) Update(_ context.Context, p *plan.Plan) error {
	if _, ok := f.plans[p.ID]; !ok {
		return fmt.Errorf("update plan: %w", core.ErrNotFound)
	}
	f.plans[p.ID] = *p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return fmt.Errorf("delete plan: %w", core.ErrNotFound)
	}
	delete(f.plans, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, params plan.ListPlansParams) ([]plan.Plan, error) {
	out := []plan.Plan{}
	for _, p := range f.plans {
		if params.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DurationInDays < out[j].DurationInDays })
	return out, nil
}

const (
	monthlyID   = "00000000-0000-0000-0000-000000000001"
	quarterlyID = "00000000-0000-0000-0000-000000000002"
	legacyID    = "00000000-0000-0000-0000-000000000009"
)

func seeded() *fakeRepo {
	return newFakeRepo(
		plan.Plan{ID: monthlyID, Name: "Monthly", PriceCents: 4999, DurationInDays: 30, IsActive: true},
		plan.Plan{ID: quarterlyID, Name: "Quarterly", PriceCents: 12999, DurationInDays: 90, IsActive: true},
		plan.Plan{ID: legacyID, Name: "Legacy", PriceCents: 2999, DurationInDays: 30, IsActive: false},
	)
}

func TestCreate(t *testing.T) {
	svc := plan.NewService(newFakeRepo())

	p, err := svc.Create(context.Background(), plan.CreatePlanRequest{
		Name:           "Annual",
		PriceCents:     39999,
		DurationInDays: 365,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.Equal(t, 365, p.DurationInDays)
}

func TestCreateRejectsBadValues(t *testing.T) {
	svc := plan.NewService(newFakeRepo())

	tests := []struct {
		name string
		req  plan.CreatePlanRequest
	}{
		{"zero duration", plan.CreatePlanRequest{Name: "Free", DurationInDays: 0}},
		{"negative price", plan.CreatePlanRequest{Name: "Odd", DurationInDays: 30, PriceCents: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestUpdate(t *testing.T) {
	repo := seeded()
	svc := plan.NewService(repo)

	price := int64(5499)
	p, err := svc.Update(context.Background(), monthlyID, plan.UpdatePlanRequest{PriceCents: &price})
	require.NoError(t, err)

	assert.Equal(t, int64(5499), p.PriceCents)
	assert.Equal(t, "Monthly", p.Name)
	assert.Equal(t, int64(5499), repo.plans[monthlyID].PriceCents)

	zero := 0
	_, err = svc.Update(context.Background(), monthlyID, plan.UpdatePlanRequest{DurationInDays: &zero})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "missing", plan.UpdatePlanRequest{PriceCents: &price})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeactivateAndFindActive(t *testing.T) {
	svc := plan.NewService(seeded())
	ctx := context.Background()

	p, err := svc.FindActive(ctx, monthlyID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly", p.Name)

	_, err = svc.Deactivate(ctx, monthlyID)
	require.NoError(t, err)

	_, err = svc.FindActive(ctx, monthlyID)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	got, err := svc.Get(ctx, monthlyID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestList(t *testing.T) {
	svc := plan.NewService(seeded())

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, p := range active {
		assert.True(t, p.IsActive)
	}
}

func TestDelete(t *testing.T) {
	svc := plan.NewService(seeded())

	require.NoError(t, svc.Delete(context.Background(), legacyID))
	assert.ErrorIs(t, svc.Delete(context.Background(), legacyID), core.ErrNotFound)
}
