package app

import (
	"context"
	"errors"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/service/payments"
	"quickbite-orders/internal/transport/kafka"
)

// paymentsHandler is the Processor-side contract the Kafka wiring depends on.
type paymentsHandler interface {
	Handle(ctx context.Context, e payments.Event) error
}

// makePaymentsKafka adapts the payments Processor to the consumer. Validation
// failures are permanent: redelivering the same payload cannot fix them, so
// they are marked and dropped instead of blocking the partition.
func makePaymentsKafka(p paymentsHandler) kafka.HandleFunc {
	return func(ctx context.Context, ev payments.Event) error {
		err := p.Handle(ctx, ev)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
