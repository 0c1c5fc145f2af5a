package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"quickbite-orders/internal/metrics"
)

type metricsOut struct {
	dig.Out

	OrdersCreatedTotal        prometheus.Counter `name:"orders_created_total"`
	DeliveryCodeMismatchTotal prometheus.Counter `name:"delivery_code_mismatch_total"`
	RateLimitExceededTotal    prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal       prometheus.Counter `name:"gateway_retries_total"`
	OrderTransitionsTotal     *prometheus.CounterVec
}

// provideMetrics registers the service counters in the default registry.
// Tests build containers repeatedly, so an already-registered collector is
// reused rather than treated as a failure.
func provideMetrics() (metricsOut, error) {
	created, err := registerCounter(metrics.NewOrdersCreatedTotal(), "orders_created_total")
	if err != nil {
		return metricsOut{}, err
	}
	mismatches, err := registerCounter(metrics.NewDeliveryCodeMismatchTotal(), "delivery_code_mismatch_total")
	if err != nil {
		return metricsOut{}, err
	}
	rateLimited, err := registerCounter(metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := registerCounter(metrics.NewGatewayRetriesTotal(), "gateway_retries_total")
	if err != nil {
		return metricsOut{}, err
	}
	transitions, err := registerCounterVec(metrics.NewOrderTransitionsTotal(), "order_transitions_total")
	if err != nil {
		return metricsOut{}, err
	}

	return metricsOut{
		OrdersCreatedTotal:        created,
		DeliveryCodeMismatchTotal: mismatches,
		RateLimitExceededTotal:    rateLimited,
		GatewayRetriesTotal:       retries,
		OrderTransitionsTotal:     transitions,
	}, nil
}

func registerCounter(c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func registerCounterVec(v *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := prometheus.DefaultRegisterer.Register(v); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return v, nil
}
