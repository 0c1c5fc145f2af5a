// Package quote computes pre-checkout delivery quotes: distance, fee and ETA
// from the vendor's store to the customer's drop-off point.
package quote

import (
	"context"
	"strings"
	"time"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/geo"
	"quickbite-orders/internal/logx"
	"quickbite-orders/internal/pricing"
)

type vendorCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
}

// Result is a delivery quote. HasEta is false when the store location is
// unknown; the fee then falls back and no window is shown.
type Result struct {
	VendorName string
	DistanceKm float64
	Fee        int64
	Eta        pricing.ETA
	HasEta     bool
}

// Service - service for computing delivery quotes.
type Service struct {
	vendors          vendorCatalog
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates a new quote Service.
func NewService(vendors vendorCatalog, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{vendors: vendors, logger: logger, operationTimeout: timeout}
}

// Quote computes the delivery quote for a vendor and drop-off point. The
// result is advisory; the authoritative fee is the one stored on the order
// at checkout.
func (s *Service) Quote(ctx context.Context, vendorID string, dropoff domain.Coordinate) (Result, error) {
	if strings.TrimSpace(vendorID) == "" || !dropoff.Valid() {
		return Result{}, apperr.ErrInvalid
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return Result{}, err
	}
	if vendor == nil {
		return Result{}, apperr.ErrNotFound
	}

	res := Result{VendorName: vendor.Name, Fee: pricing.FallbackFee}
	if vendor.Location != nil {
		res.DistanceKm = geo.DistanceKm(*vendor.Location, dropoff)
		res.Fee = pricing.DeliveryFee(res.DistanceKm)
		res.Eta, res.HasEta = pricing.EtaWindow(res.DistanceKm)
	}

	s.logger.Debug("quote computed",
		logx.String("vendor_id", vendorID),
		logx.Float64("distance_km", res.DistanceKm),
		logx.Int64("fee", res.Fee),
	)
	return res, nil
}
