package kafka

import (
	"strings"
	"time"

	"quickbite-orders/internal/service/payments"
)

// EventDTO is the wire form of a payment event.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to payments.Event.
func ToDomain(dto EventDTO) payments.Event {
	return payments.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
}
