package payments

import (
	"time"
)

// Event is a single payment event emitted by the checkout collaborator.
type Event struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
