package domain

import (
	"strings"
	"time"

	"quickbite-orders/internal/apperr"
)

// Item is a single order line.
type Item struct {
	Title string
	Qty   int
	Price int64 // minor currency units
}

// Order represents a customer order moving through the delivery lifecycle.
// DeliveryFee and DeliveryCode are set at checkout and never change
// afterwards; only Status and CompletedAt are mutated by transitions.
type Order struct {
	ID           string
	CustomerID   string
	VendorID     string
	VendorName   string
	Items        []Item
	DeliveryFee  int64
	EtaLowMin    int
	EtaHighMin   int
	Status       OrderStatus
	DeliveryCode string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// OrderFilter narrows List results. Zero-value fields are not applied.
type OrderFilter struct {
	Status     OrderStatus
	CustomerID string
	VendorID   string
	Limit      *int
	Offset     *int
}

// Advance moves the order one step along the forward chain. The final step
// into StatusCompleted is excluded: it requires the delivery code and goes
// through Complete.
func (o *Order) Advance() error {
	next, ok := o.Status.next()
	if !ok {
		return apperr.ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// Complete performs the terminal transition out_for_delivery → completed.
// The supplied code is compared against the stored delivery code by exact
// string equality after trimming. A mismatch leaves the order unchanged.
func (o *Order) Complete(code string, now time.Time) error {
	if o.Status != StatusOutForDelivery {
		return apperr.ErrInvalidTransition
	}
	if !CodeMatches(o.DeliveryCode, code) {
		return apperr.ErrCodeMismatch
	}
	o.Status = StatusCompleted
	completedAt := now.UTC()
	o.CompletedAt = &completedAt
	return nil
}

// Cancel moves the order into the cancelled absorption state. Terminal
// orders reject the transition.
func (o *Order) Cancel(now time.Time) error {
	if o.Status.Terminal() {
		return apperr.ErrInvalidTransition
	}
	o.Status = StatusCancelled
	completedAt := now.UTC()
	o.CompletedAt = &completedAt
	return nil
}

// ReorderItems returns a copy of the order's items, suitable for seeding a
// new cart. The receiver is never mutated.
func (o *Order) ReorderItems() []Item {
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	return items
}

// ValidateItems checks an order's lines: at least one line, positive
// quantities, non-negative prices, non-empty titles.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return apperr.ErrInvalid
	}
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" || it.Qty <= 0 || it.Price < 0 {
			return apperr.ErrInvalid
		}
	}
	return nil
}
