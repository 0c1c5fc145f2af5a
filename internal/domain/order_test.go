package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
)

func newActiveOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:           "ord_1",
		CustomerID:   "cust_1",
		VendorID:     "vend_1",
		Items:        []domain.Item{{Title: "Jollof rice", Qty: 2, Price: 1500}},
		DeliveryFee:  1300,
		Status:       status,
		DeliveryCode: "8421",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrder_Advance_ForwardChain(t *testing.T) {
	t.Parallel()

	o := newActiveOrder(domain.StatusNew)

	require.NoError(t, o.Advance())
	require.Equal(t, domain.StatusPreparing, o.Status)

	require.NoError(t, o.Advance())
	require.Equal(t, domain.StatusOutForDelivery, o.Status)

	// The final step requires the delivery code and is not reachable
	// through Advance.
	err := o.Advance()
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.Equal(t, domain.StatusOutForDelivery, o.Status)
}

func TestOrder_Advance_TerminalRejected(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.OrderStatus{domain.StatusCompleted, domain.StatusCancelled} {
		o := newActiveOrder(status)
		require.ErrorIs(t, o.Advance(), apperr.ErrInvalidTransition)
		require.Equal(t, status, o.Status)
	}
}

func TestOrder_Complete_ExactCode(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	o := newActiveOrder(domain.StatusOutForDelivery)
	require.NoError(t, o.Complete("8421", now))
	require.Equal(t, domain.StatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	require.True(t, o.CompletedAt.Equal(now))

	// Second attempt on the now-completed order is rejected.
	require.ErrorIs(t, o.Complete("8421", now), apperr.ErrInvalidTransition)
}

func TestOrder_Complete_TrimsInput(t *testing.T) {
	t.Parallel()

	o := newActiveOrder(domain.StatusOutForDelivery)
	require.NoError(t, o.Complete("  8421 \n", time.Now()))
	require.Equal(t, domain.StatusCompleted, o.Status)
}

func TestOrder_Complete_Mismatch(t *testing.T) {
	t.Parallel()

	o := newActiveOrder(domain.StatusOutForDelivery)

	err := o.Complete("8412", time.Now())
	require.ErrorIs(t, err, apperr.ErrCodeMismatch)
	require.Equal(t, domain.StatusOutForDelivery, o.Status)
	require.Nil(t, o.CompletedAt)

	// Mismatch is retryable; the corrected code still works.
	require.NoError(t, o.Complete("8421", time.Now()))
}

func TestOrder_Complete_OnlyFromOutForDelivery(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.OrderStatus{domain.StatusNew, domain.StatusPreparing, domain.StatusCancelled} {
		o := newActiveOrder(status)
		require.ErrorIs(t, o.Complete("8421", time.Now()), apperr.ErrInvalidTransition)
		require.Equal(t, status, o.Status)
	}
}

func TestOrder_Cancel(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.OrderStatus{domain.StatusNew, domain.StatusPreparing, domain.StatusOutForDelivery} {
		o := newActiveOrder(status)
		require.NoError(t, o.Cancel(time.Now()))
		require.Equal(t, domain.StatusCancelled, o.Status)
	}

	for _, status := range []domain.OrderStatus{domain.StatusCompleted, domain.StatusCancelled} {
		o := newActiveOrder(status)
		require.ErrorIs(t, o.Cancel(time.Now()), apperr.ErrInvalidTransition)
		require.Equal(t, status, o.Status)
	}
}

func TestOrder_ReorderItems_Copies(t *testing.T) {
	t.Parallel()

	o := newActiveOrder(domain.StatusCompleted)
	items := o.ReorderItems()
	require.Equal(t, o.Items, items)

	items[0].Qty = 99
	require.Equal(t, 2, o.Items[0].Qty, "historical record must not be mutated")
}

func TestValidateItems(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, domain.ValidateItems(nil), apperr.ErrInvalid)
	require.ErrorIs(t, domain.ValidateItems([]domain.Item{}), apperr.ErrInvalid)
	require.ErrorIs(t, domain.ValidateItems([]domain.Item{{Title: " ", Qty: 1, Price: 100}}), apperr.ErrInvalid)
	require.ErrorIs(t, domain.ValidateItems([]domain.Item{{Title: "Suya", Qty: 0, Price: 100}}), apperr.ErrInvalid)
	require.ErrorIs(t, domain.ValidateItems([]domain.Item{{Title: "Suya", Qty: 1, Price: -1}}), apperr.ErrInvalid)
	require.NoError(t, domain.ValidateItems([]domain.Item{{Title: "Suya", Qty: 1, Price: 0}}))
}

func TestOrderStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.OrderStatus{
		domain.StatusNew, domain.StatusPreparing, domain.StatusOutForDelivery,
		domain.StatusCompleted, domain.StatusCancelled,
	} {
		require.True(t, s.Valid())
	}
	require.False(t, domain.OrderStatus("pending").Valid())
	require.False(t, domain.OrderStatus("").Valid())
}

func TestOrderStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.True(t, domain.StatusCompleted.Terminal())
	require.True(t, domain.StatusCancelled.Terminal())
	require.False(t, domain.StatusNew.Terminal())
	require.False(t, domain.StatusPreparing.Terminal())
	require.False(t, domain.StatusOutForDelivery.Terminal())
}
