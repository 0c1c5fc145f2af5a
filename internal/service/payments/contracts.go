package payments

import (
	"context"

	"quickbite-orders/internal/domain"
)

// OrderPort abstracts the subset of order service operations needed by the
// payments Processor when handling payment events
type OrderPort interface {
	StartPreparing(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
}
