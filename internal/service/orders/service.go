package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/geo"
	"quickbite-orders/internal/logx"
	"quickbite-orders/internal/ports/ordertx"
	"quickbite-orders/internal/pricing"
)

// Service coordinates the order lifecycle: checkout, forward status
// transitions, code-gated completion, cancellation and reorder. Every
// operation takes the acting identity explicitly.
type Service struct {
	repo             orderRepository
	vendors          vendorCatalog
	logger           logx.Logger
	metrics          Metrics
	operationTimeout time.Duration
	now              func() time.Time
	newID            func() string
	newCode          func() (string, error)
}

// NewService creates and configures an orders Service.
func NewService(repo orderRepository, vendors vendorCatalog, logger logx.Logger, metrics Metrics, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		vendors:          vendors,
		logger:           logger,
		metrics:          metrics,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
		newCode:          domain.NewDeliveryCode,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CheckoutInput carries the confirmed cart at the moment of checkout.
type CheckoutInput struct {
	VendorID string
	Items    []domain.Item
	Dropoff  domain.Coordinate
}

func validateActor(a domain.Actor) error {
	if strings.TrimSpace(a.ID) == "" || !a.Role.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Checkout creates an order from a confirmed cart. The delivery fee and ETA
// are computed here, exactly once, from the store and drop-off coordinates;
// downstream reads use the stored values and never re-derive them.
func (s *Service) Checkout(ctx context.Context, actor domain.Actor, in CheckoutInput) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleCustomer && actor.Role != domain.RoleAdmin {
		return nil, apperr.ErrInvalid
	}
	if strings.TrimSpace(in.VendorID) == "" {
		return nil, apperr.ErrInvalid
	}
	if err := domain.ValidateItems(in.Items); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	vendor, err := s.vendors.GetByID(ctx, in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.ErrNotFound
	}

	fee := pricing.FallbackFee
	var eta pricing.ETA
	if vendor.Location != nil && in.Dropoff.Valid() {
		dist := geo.DistanceKm(*vendor.Location, in.Dropoff)
		fee = pricing.DeliveryFee(dist)
		eta, _ = pricing.EtaWindow(dist)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		ID:           s.newID(),
		CustomerID:   actor.ID,
		VendorID:     vendor.ID,
		VendorName:   vendor.Name,
		Items:        append([]domain.Item(nil), in.Items...),
		DeliveryFee:  fee,
		EtaLowMin:    eta.LowMin,
		EtaHighMin:   eta.HighMin,
		Status:       domain.StatusNew,
		DeliveryCode: code,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.metrics.created()
	s.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.String("order_id", o.ID),
		logx.String("vendor_id", o.VendorID),
		logx.Int64("delivery_fee", o.DeliveryFee),
	)
	return o, nil
}

// Get retrieves an active order visible to the actor.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || !canView(actor, o) {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns active orders scoped to the actor: customers and vendors see
// their own, riders and admins the full active set.
func (s *Service) List(ctx context.Context, actor domain.Actor, f domain.OrderFilter) ([]domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.ErrInvalid
	}

	switch actor.Role {
	case domain.RoleCustomer:
		f.CustomerID = actor.ID
	case domain.RoleVendor:
		f.VendorID = actor.ID
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// Advance moves an order one step along the forward chain. The terminal step
// is excluded; it goes through Complete with the delivery code.
func (s *Service) Advance(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || !canView(actor, o) {
			return apperr.ErrNotFound
		}
		if !canAdvance(actor) {
			return apperr.ErrInvalid
		}
		if err := o.Advance(); err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, o.ID, o.Status); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.transition(string(result.Status))
	s.logger.Info("order advanced",
		logx.String("event", "order_advanced"),
		logx.String("order_id", result.ID),
		logx.String("status", string(result.Status)),
		logx.String("actor_id", actor.ID),
	)
	return result, nil
}

// StartPreparing moves an order from new into preparing. Unlike Advance it
// refuses any other starting status, so redelivered payment-capture events
// cannot push an already-preparing order further along the chain.
func (s *Service) StartPreparing(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || !canView(actor, o) {
			return apperr.ErrNotFound
		}
		if !canAdvance(actor) {
			return apperr.ErrInvalid
		}
		if o.Status != domain.StatusNew {
			return apperr.ErrInvalidTransition
		}
		if err := o.Advance(); err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, o.ID, o.Status); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.transition(string(result.Status))
	s.logger.Info("order preparing",
		logx.String("event", "order_preparing"),
		logx.String("order_id", result.ID),
		logx.String("actor_id", actor.ID),
	)
	return result, nil
}

// Complete performs the code-gated terminal transition and archives the
// order. A code mismatch leaves the order untouched and is retryable.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id, code string) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || !canView(actor, o) {
			return apperr.ErrNotFound
		}
		if !canComplete(actor) {
			return apperr.ErrInvalid
		}
		if err := o.Complete(code, s.now()); err != nil {
			return err
		}
		if err := tx.Archive(ctx, o); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrCodeMismatch) {
			s.metrics.codeMismatch()
			s.logger.Warn("delivery code rejected",
				logx.String("event", "delivery_code_rejected"),
				logx.String("order_id", id),
				logx.String("actor_id", actor.ID),
			)
		}
		return nil, err
	}

	s.metrics.transition(string(domain.StatusCompleted))
	s.logger.Info("order completed",
		logx.String("event", "order_completed"),
		logx.String("order_id", result.ID),
		logx.Time("completed_at", *result.CompletedAt),
	)
	return result, nil
}

// Cancel moves an order into the cancelled absorption state and archives it.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil || !canView(actor, o) {
			return apperr.ErrNotFound
		}
		if !canCancel(actor) {
			return apperr.ErrInvalid
		}
		if err := o.Cancel(s.now()); err != nil {
			return err
		}
		if err := tx.Archive(ctx, o); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.transition(string(domain.StatusCancelled))
	s.logger.Info("order cancelled",
		logx.String("event", "order_cancelled"),
		logx.String("order_id", result.ID),
		logx.String("actor_id", actor.ID),
	)
	return result, nil
}

// Reorder returns a read-only copy of a completed historical order's items,
// suitable for seeding a new cart. The historical record is never mutated.
func (s *Service) Reorder(ctx context.Context, actor domain.Actor, id string) ([]domain.Item, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || !canView(actor, o) {
		return nil, apperr.ErrNotFound
	}
	if o.Status != domain.StatusCompleted {
		return nil, apperr.ErrInvalid
	}
	return o.ReorderItems(), nil
}

// canView hides other customers' and vendors' orders. Riders and admins see
// everything; rider assignment is owned by a different service.
func canView(actor domain.Actor, o *domain.Order) bool {
	switch actor.Role {
	case domain.RoleCustomer:
		return o.CustomerID == actor.ID
	case domain.RoleVendor:
		return o.VendorID == actor.ID
	case domain.RoleRider, domain.RoleAdmin:
		return true
	default:
		return false
	}
}

func canAdvance(actor domain.Actor) bool {
	return actor.Role == domain.RoleVendor || actor.Role == domain.RoleAdmin
}

func canComplete(actor domain.Actor) bool {
	return actor.Role == domain.RoleRider || actor.Role == domain.RoleVendor || actor.Role == domain.RoleAdmin
}

func canCancel(actor domain.Actor) bool {
	return actor.Role != domain.RoleRider
}
