package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/metrics"
	"quickbite-orders/internal/repository/memory"
	"quickbite-orders/internal/service/orders"
	testlog "quickbite-orders/internal/testutil"
)

var (
	customer = domain.Actor{ID: "cust_1", Role: domain.RoleCustomer}
	vendor   = domain.Actor{ID: "vend_1", Role: domain.RoleVendor}
	rider    = domain.Actor{ID: "rider_1", Role: domain.RoleRider}
	admin    = domain.Actor{ID: "admin_1", Role: domain.RoleAdmin}
)

type stubCatalog struct {
	fn func(ctx context.Context, id string) (*domain.Vendor, error)
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	if s.fn == nil {
		return nil, errors.New("stubCatalog: nil")
	}
	return s.fn(ctx, id)
}

func storeVendor() *domain.Vendor {
	return &domain.Vendor{
		ID:       "vend_1",
		Name:     "Mama Nkechi Kitchen",
		Location: &domain.Coordinate{Lat: 6.2239, Lng: 7.1185},
	}
}

func fixedCatalog() *stubCatalog {
	return &stubCatalog{fn: func(_ context.Context, id string) (*domain.Vendor, error) {
		if id != "vend_1" {
			return nil, nil
		}
		return storeVendor(), nil
	}}
}

func cartInput() orders.CheckoutInput {
	return orders.CheckoutInput{
		VendorID: "vend_1",
		Items:    []domain.Item{{Title: "Jollof rice", Qty: 2, Price: 1500}},
		Dropoff:  domain.Coordinate{Lat: 6.2304, Lng: 7.1212},
	}
}

func newTestService(t *testing.T) (*orders.Service, *memory.OrderRepo) {
	t.Helper()
	repo := memory.NewOrderRepo()
	svc := orders.NewService(repo, fixedCatalog(), testlog.New().Logger(), orders.Metrics{}, 3*time.Second)
	return svc, repo
}

func TestService_Checkout_ComputesFeeOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	require.NotEmpty(t, o.ID)
	require.Equal(t, "cust_1", o.CustomerID)
	require.Equal(t, "Mama Nkechi Kitchen", o.VendorName)
	require.Equal(t, domain.StatusNew, o.Status)
	require.Len(t, o.DeliveryCode, 4)

	// The store and drop-off are ~0.77 km apart; the floor fee dominates.
	require.Equal(t, int64(1300), o.DeliveryFee)
	require.Equal(t, 1, o.EtaLowMin)
	require.Equal(t, 7, o.EtaHighMin)

	stored, err := repo.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, o.DeliveryFee, stored.DeliveryFee)
	require.Equal(t, o.DeliveryCode, stored.DeliveryCode)
}

func TestService_Checkout_UnknownVendorLocationFallsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog := &stubCatalog{fn: func(context.Context, string) (*domain.Vendor, error) {
		return &domain.Vendor{ID: "vend_1", Name: "Ghost Kitchen"}, nil
	}}
	svc := orders.NewService(memory.NewOrderRepo(), catalog, nil, orders.Metrics{}, 0)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	require.Equal(t, int64(1300), o.DeliveryFee)
	require.Zero(t, o.EtaLowMin)
	require.Zero(t, o.EtaHighMin)
}

func TestService_Checkout_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Checkout(ctx, domain.Actor{}, cartInput())
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.Checkout(ctx, rider, cartInput())
	require.ErrorIs(t, err, apperr.ErrInvalid)

	in := cartInput()
	in.Items = nil
	_, err = svc.Checkout(ctx, customer, in)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	in = cartInput()
	in.VendorID = "  "
	_, err = svc.Checkout(ctx, customer, in)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	in = cartInput()
	in.VendorID = "vend_missing"
	_, err = svc.Checkout(ctx, customer, in)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_FullLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)

	// Vendor takes the order through the kitchen.
	advanced, err := svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, advanced.Status)

	advanced, err = svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOutForDelivery, advanced.Status)

	// Advance cannot perform the final, code-gated step.
	_, err = svc.Advance(ctx, vendor, o.ID)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)

	// Rider confirms hand-off with the customer's code, whitespace and all.
	completed, err := svc.Complete(ctx, rider, o.ID, " "+o.DeliveryCode+" ")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// The order left the active set and landed in history.
	_, err = svc.Get(ctx, customer, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	archived, err := repo.GetHistory(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, archived.Status)

	// Terminal: nothing moves it again.
	_, err = svc.Complete(ctx, rider, o.ID, o.DeliveryCode)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Cancel(ctx, customer, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_StartPreparing_OnlyFromNew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)

	started, err := svc.StartPreparing(ctx, admin, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, started.Status)

	// Repeating the transition is a stale request, never a further advance.
	_, err = svc.StartPreparing(ctx, admin, o.ID)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)

	got, err := svc.Get(ctx, customer, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, got.Status)
}

func TestService_Complete_WrongCodeIsRetryable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mismatchCounter := metrics.NewDeliveryCodeMismatchTotal()
	repo := memory.NewOrderRepo()
	rec := testlog.New()
	svc := orders.NewService(repo, fixedCatalog(), rec.Logger(),
		orders.Metrics{CodeMismatches: mismatchCounter}, 3*time.Second)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	_, err = svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)

	wrong := "0000"
	if o.DeliveryCode == wrong {
		wrong = "1111"
	}

	_, err = svc.Complete(ctx, rider, o.ID, wrong)
	require.ErrorIs(t, err, apperr.ErrCodeMismatch)
	require.Equal(t, float64(1), promtestutil.ToFloat64(mismatchCounter))
	require.True(t, rec.Has("delivery code rejected"))

	// State unchanged, the corrected code still completes.
	active, err := svc.Get(ctx, customer, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOutForDelivery, active.Status)

	_, err = svc.Complete(ctx, rider, o.ID, o.DeliveryCode)
	require.NoError(t, err)
}

func TestService_Cancel_FromEveryActiveStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(t)

	for _, steps := range []int{0, 1, 2} {
		o, err := svc.Checkout(ctx, customer, cartInput())
		require.NoError(t, err)
		for i := 0; i < steps; i++ {
			_, err = svc.Advance(ctx, vendor, o.ID)
			require.NoError(t, err)
		}

		cancelled, err := svc.Cancel(ctx, customer, o.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelled, cancelled.Status)

		archived, err := repo.GetHistory(ctx, o.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelled, archived.Status)
	}
}

func TestService_ActorScoping(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)

	// A different customer cannot see or touch the order.
	stranger := domain.Actor{ID: "cust_2", Role: domain.RoleCustomer}
	_, err = svc.Get(ctx, stranger, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Cancel(ctx, stranger, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// A different vendor cannot advance it.
	otherVendor := domain.Actor{ID: "vend_2", Role: domain.RoleVendor}
	_, err = svc.Advance(ctx, otherVendor, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// The customer cannot run the kitchen.
	_, err = svc.Advance(ctx, customer, o.ID)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// Riders cannot cancel.
	_, err = svc.Cancel(ctx, rider, o.ID)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// Admin is unrestricted.
	_, err = svc.Advance(ctx, admin, o.ID)
	require.NoError(t, err)
}

func TestService_List_ScopedByRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, domain.Actor{ID: "cust_2", Role: domain.RoleCustomer}, cartInput())
	require.NoError(t, err)

	mine, err := svc.List(ctx, customer, domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, first.ID, mine[0].ID)

	all, err := svc.List(ctx, rider, domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	vendors, err := svc.List(ctx, vendor, domain.OrderFilter{Status: domain.StatusNew})
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	_ = second

	_, err = svc.List(ctx, admin, domain.OrderFilter{Status: domain.OrderStatus("pending")})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Reorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	_, err = svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, vendor, o.ID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, rider, o.ID, o.DeliveryCode)
	require.NoError(t, err)

	items, err := svc.Reorder(ctx, customer, o.ID)
	require.NoError(t, err)
	require.Equal(t, o.Items, items)

	// Mutating the copy must not touch the archived record.
	items[0].Qty = 99
	archived, err := repo.GetHistory(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, 2, archived.Items[0].Qty)

	// Strangers cannot reorder someone else's history.
	_, err = svc.Reorder(ctx, domain.Actor{ID: "cust_2", Role: domain.RoleCustomer}, o.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Reorder_CancelledNotEligible(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	o, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, customer, o.ID)
	require.NoError(t, err)

	_, err = svc.Reorder(ctx, customer, o.ID)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Checkout_CountsOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	created := metrics.NewOrdersCreatedTotal()
	svc := orders.NewService(memory.NewOrderRepo(), fixedCatalog(), nil,
		orders.Metrics{Created: created}, 3*time.Second)

	_, err := svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer, cartInput())
	require.NoError(t, err)

	require.Equal(t, float64(2), promtestutil.ToFloat64(created))
}

func TestService_CatalogErrorPropagates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("catalog down")
	catalog := &stubCatalog{fn: func(context.Context, string) (*domain.Vendor, error) {
		return nil, boom
	}}
	svc := orders.NewService(memory.NewOrderRepo(), catalog, nil, orders.Metrics{}, 3*time.Second)

	_, err := svc.Checkout(ctx, customer, cartInput())
	require.ErrorIs(t, err, boom)
}
