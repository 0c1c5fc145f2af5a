package handlers

import "time"

type coordinateDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type itemDTO struct {
	Title string `json:"title"`
	Qty   int    `json:"qty"`
	Price int64  `json:"price"`
}

// orderDTO never carries the delivery code: it is handed out exactly once,
// in the checkout response.
type orderDTO struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	VendorID    string     `json:"vendor_id"`
	VendorName  string     `json:"vendor_name"`
	Items       []itemDTO  `json:"items"`
	DeliveryFee int64      `json:"delivery_fee"`
	EtaLowMin   int        `json:"eta_low_min"`
	EtaHighMin  int        `json:"eta_high_min"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type checkoutRequest struct {
	VendorID string        `json:"vendor_id"`
	Items    []itemDTO     `json:"items"`
	Dropoff  coordinateDTO `json:"dropoff"`
}

type checkoutResponse struct {
	ID           string `json:"id"`
	DeliveryCode string `json:"delivery_code"`
	DeliveryFee  int64  `json:"delivery_fee"`
	EtaLowMin    int    `json:"eta_low_min"`
	EtaHighMin   int    `json:"eta_high_min"`
	Status       string `json:"status"`
}

type completeOrderRequest struct {
	Code string `json:"code"`
}

type reorderResponse struct {
	Items []itemDTO `json:"items"`
}

type quoteRequest struct {
	VendorID string        `json:"vendor_id"`
	Dropoff  coordinateDTO `json:"dropoff"`
}

type quoteResponse struct {
	VendorName string  `json:"vendor_name"`
	DistanceKm float64 `json:"distance_km"`
	Fee        int64   `json:"fee"`
	Eta        string  `json:"eta,omitempty"`
	EtaLowMin  int     `json:"eta_low_min,omitempty"`
	EtaHighMin int     `json:"eta_high_min,omitempty"`
}
