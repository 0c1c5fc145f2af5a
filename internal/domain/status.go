package domain

// OrderStatus represents the status of an order.
type OrderStatus string

// List of possible order statuses. The active chain is forward-only:
// new → preparing → out_for_delivery → completed. Cancelled is reachable
// from any non-terminal status.
const (
	StatusNew            OrderStatus = "new"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

var allowedStatuses = [...]OrderStatus{
	StatusNew, StatusPreparing, StatusOutForDelivery, StatusCompleted, StatusCancelled,
}

// Valid checks if the OrderStatus is valid.
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// next returns the following status in the forward chain. The step into
// StatusCompleted is not listed here: it is only reachable through
// Order.Complete, which checks the delivery code.
func (s OrderStatus) next() (OrderStatus, bool) {
	switch s {
	case StatusNew:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusOutForDelivery, true
	default:
		return "", false
	}
}
