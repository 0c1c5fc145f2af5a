// Package payments reacts to payment events from the checkout collaborator:
// a captured payment sends the order into the kitchen, a cancelled or
// refunded one cancels it.
package payments

import (
	"context"
	"errors"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
)

// workerActor is the identity payment-driven transitions run under.
var workerActor = domain.Actor{ID: "payments-worker", Role: domain.RoleAdmin}

// Processor processes payment events
type Processor struct {
	orders  OrderPort
	factory *actionFactory
}

// NewProcessor creates a new payments.Processor
func NewProcessor(orders OrderPort) *Processor {
	p := &Processor{orders: orders}
	p.factory = newActionFactory(p.onCaptured, p.onCanceled)
	return p
}

// Handle processes a single payments.Event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCaptured(ctx context.Context, e Event) error {
	_, err := p.orders.StartPreparing(ctx, workerActor, e.OrderID)
	// Already past "new" or already archived: the event is stale, not a failure.
	if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	_, err := p.orders.Cancel(ctx, workerActor, e.OrderID)
	if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
