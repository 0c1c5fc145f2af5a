package orders

import (
	"context"

	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/ports/ordertx"
)

// orderRepository defines storage operations required by the business layer.
type orderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	GetHistory(ctx context.Context, id string) (*domain.Order, error)
	WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) error
}

// vendorCatalog resolves vendor references at checkout time.
type vendorCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
}
