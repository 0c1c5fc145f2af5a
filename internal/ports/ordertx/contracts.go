package ordertx

import (
	"context"

	"quickbite-orders/internal/domain"
)

// Repository abstracts the order storage operations available inside a
// transaction. Archive moves a terminal order out of the active set and into
// history; both effects commit or roll back together.
type Repository interface {
	GetForUpdate(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) error
	Archive(ctx context.Context, o *domain.Order) error
}
