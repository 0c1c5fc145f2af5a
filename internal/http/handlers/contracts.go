package handlers

import (
	"context"

	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/service/orders"
	"quickbite-orders/internal/service/quote"
)

type orderUsecase interface {
	Checkout(ctx context.Context, actor domain.Actor, in orders.CheckoutInput) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	List(ctx context.Context, actor domain.Actor, f domain.OrderFilter) ([]domain.Order, error)
	Advance(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	Complete(ctx context.Context, actor domain.Actor, id, code string) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	Reorder(ctx context.Context, actor domain.Actor, id string) ([]domain.Item, error)
}

// NewOrderUsecase wires an orders.Service into an orderUsecase.
func NewOrderUsecase(svc *orders.Service) orderUsecase {
	return svc
}

type quoteUsecase interface {
	Quote(ctx context.Context, vendorID string, dropoff domain.Coordinate) (quote.Result, error)
}

// NewQuoteUsecase wires a quote.Service into a quoteUsecase.
func NewQuoteUsecase(svc *quote.Service) quoteUsecase {
	return svc
}
