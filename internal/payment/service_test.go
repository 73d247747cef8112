// AngelaMos | 2026
// service_test.go

package payment_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/member"
	"github.com/carterperez-dev/gym-membership/internal/payment"
)

func newService(l *ledger) *payment.Service {
	return payment.NewService(nil, l, l.stores, core.FixedClock(now), nil)
}

func completed(planID *string) payment.CreatePaymentRequest {
	return payment.CreatePaymentRequest{
		MemberID:         memberID,
		AmountCents:      5000,
		Method:           payment.MethodCash,
		Status:           payment.StatusCompleted,
		MembershipPlanID: planID,
	}
}

func endDate(l *ledger) string {
	m := l.members[memberID]
	if m.MembershipEndDate == nil {
		return ""
	}
	return m.MembershipEndDate.Format(member.DateLayout)
}

func TestCreateCompletedExtends(t *testing.T) {
	tests := []struct {
		name    string
		end     *time.Time
		wantEnd string
	}{
		{"active window keeps remaining days", endIn(5), "2026-04-14"},
		{"expired window restarts today", endIn(-20), "2026-04-09"},
		{"no window restarts today", nil, "2026-04-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			seed(l, tt.end)

			p, err := newService(l).Create(context.Background(), completed(ptr(monthlyID)))
			require.NoError(t, err)

			assert.True(t, p.MembershipExtended)
			assert.Equal(t, "Ola Berg", p.MemberName)
			assert.Equal(t, "Monthly", *p.PlanName)
			assert.True(t, now.Equal(p.PaymentDate))
			assert.Equal(t, tt.wantEnd, endDate(l))
			assert.True(t, l.members[memberID].IsActive)
			assert.Len(t, l.payments, 1)
			assert.Equal(t, 1, l.txCount)
		})
	}
}

func TestCreateWithInactivePlanStillExtends(t *testing.T) {
	l := newLedger()
	seed(l, endIn(0))

	p, err := newService(l).Create(context.Background(), completed(ptr(legacyID)))
	require.NoError(t, err)
	assert.True(t, p.MembershipExtended)
	assert.Equal(t, "2026-03-20", endDate(l))
}

func TestCreateWithoutExtension(t *testing.T) {
	tests := []struct {
		name string
		req  payment.CreatePaymentRequest
	}{
		{"pending with plan", func() payment.CreatePaymentRequest {
			r := completed(ptr(monthlyID))
			r.Status = payment.StatusPending
			return r
		}()},
		{"completed without plan", completed(nil)},
		{"failed with plan", func() payment.CreatePaymentRequest {
			r := completed(ptr(monthlyID))
			r.Status = payment.StatusFailed
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			seed(l, endIn(5))

			p, err := newService(l).Create(context.Background(), tt.req)
			require.NoError(t, err)
			assert.False(t, p.MembershipExtended)
			assert.Equal(t, "2026-03-15", endDate(l))
			assert.Equal(t, 1, l.members[memberID].Version)
		})
	}
}

func TestCreateNotFound(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		l := newLedger()
		seed(l, endIn(5))
		req := completed(ptr(monthlyID))
		req.MemberID = "22222222-2222-2222-2222-222222222222"

		_, err := newService(l).Create(context.Background(), req)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, l.payments)
	})

	t.Run("plan", func(t *testing.T) {
		l := newLedger()
		seed(l, endIn(5))

		_, err := newService(l).Create(context.Background(), completed(ptr("33333333-3333-3333-3333-333333333333")))
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Empty(t, l.payments)
		assert.Equal(t, "2026-03-15", endDate(l))
	})
}

func TestCreateRollsBackWhenExtensionFails(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	l.failMemberUpdate = true

	_, err := newService(l).Create(context.Background(), completed(ptr(monthlyID)))
	require.ErrorIs(t, err, errInjected)

	assert.Empty(t, l.payments, "payment insert must roll back")
	assert.Equal(t, "2026-03-15", endDate(l))
}

func TestCreateRejectsBadInput(t *testing.T) {
	l := newLedger()
	seed(l, nil)
	svc := newService(l)

	req := completed(nil)
	req.Status = "lost"
	_, err := svc.Create(context.Background(), req)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)

	req = completed(nil)
	req.AmountCents = -1
	_, err = svc.Create(context.Background(), req)
	assert.Error(t, err)

	assert.Zero(t, l.txCount)
}

func TestEdit(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	svc := newService(l)
	ctx := context.Background()

	extended, err := svc.Create(ctx, completed(ptr(monthlyID)))
	require.NoError(t, err)

	refunded := payment.StatusRefunded
	_, err = svc.Edit(ctx, extended.ID, payment.EditPaymentRequest{Status: &refunded})
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Equal(t, payment.StatusCompleted, l.payments[extended.ID].Status)

	edited, err := svc.Edit(ctx, extended.ID, payment.EditPaymentRequest{
		TransactionReference: ptr("RCPT-42"),
		Notes:                ptr("paid at desk"),
	})
	require.NoError(t, err)
	assert.Equal(t, "RCPT-42", *edited.TransactionReference)

	pendingReq := completed(ptr(monthlyID))
	pendingReq.Status = payment.StatusPending
	pending, err := svc.Create(ctx, pendingReq)
	require.NoError(t, err)
	before := endDate(l)

	done := payment.StatusCompleted
	edited, err = svc.Edit(ctx, pending.ID, payment.EditPaymentRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, edited.Status)
	assert.False(t, edited.MembershipExtended)
	assert.Equal(t, before, endDate(l), "editing never applies an extension")

	_, err = svc.Edit(ctx, "missing", payment.EditPaymentRequest{})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteKeepsExtension(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	svc := newService(l)
	ctx := context.Background()

	p, err := svc.Create(ctx, completed(ptr(monthlyID)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Empty(t, l.payments)
	assert.Equal(t, "2026-04-14", endDate(l))

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), core.ErrNotFound)
}

func TestListTotals(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	svc := newService(l)
	ctx := context.Background()

	for _, status := range []payment.Status{payment.StatusCompleted, payment.StatusPending, payment.StatusCompleted} {
		req := completed(nil)
		req.Status = status
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, payment.ListPaymentsParams{From: &today, To: &today})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, int64(10000), res.TotalCompletedCents)

	res, err = svc.List(ctx, payment.ListPaymentsParams{Status: payment.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = svc.List(ctx, payment.ListPaymentsParams{Status: "bogus"})
	assert.Error(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPrefill(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	svc := newService(l)

	pf, err := svc.Prefill(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, "Ola Berg", pf.MemberName)
	assert.Equal(t, int64(5000), pf.AmountCents)
	assert.Equal(t, monthlyID, *pf.MembershipPlanID)
	assert.Equal(t, payment.StatusCompleted, pf.Status)

	_, err = svc.Prefill(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) (int, error) {
	c.calls++
	return 1, nil
}

func TestLedgerWritesInvalidateReadModel(t *testing.T) {
	l := newLedger()
	seed(l, endIn(5))
	svc := newService(l)
	inv := &countingInvalidator{}
	svc.InvalidateOnWrite(inv)
	ctx := context.Background()

	p, err := svc.Create(ctx, completed(ptr(monthlyID)))
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = svc.Edit(ctx, p.ID, payment.EditPaymentRequest{Notes: ptr("paid at desk")})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Equal(t, 3, inv.calls)

	l.failMemberUpdate = true
	_, err = svc.Create(ctx, completed(ptr(monthlyID)))
	require.Error(t, err)
	assert.Equal(t, 3, inv.calls, "rolled back create leaves the cache alone")
}
