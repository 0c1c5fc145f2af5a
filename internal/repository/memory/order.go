// Package memory holds an in-process order store implementing the same ports
// as the Postgres repository. It backs tests and local runs without a
// database; transactions apply directly with no rollback.
package memory

import (
	"context"
	"sort"
	"sync"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/ports/ordertx"
)

// OrderRepo is an in-memory order repository guarded by a mutex. All reads
// return copies so callers can never mutate stored state in place.
type OrderRepo struct {
	mu      sync.RWMutex
	active  map[string]*domain.Order
	history map[string]*domain.Order
}

// NewOrderRepo creates a new in-memory OrderRepo.
func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		active:  make(map[string]*domain.Order),
		history: make(map[string]*domain.Order),
	}
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.Item(nil), o.Items...)
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}

// Create persists a new active order.
func (r *OrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.active[o.ID]; exists {
		return apperr.ErrConflict
	}
	if _, exists := r.history[o.ID]; exists {
		return apperr.ErrConflict
	}
	r.active[o.ID] = copyOrder(o)
	return nil
}

// Get returns an active order by ID, or nil when absent.
func (r *OrderRepo) Get(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.active[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

// List returns active orders matching the filter, newest first.
func (r *OrderRepo) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, 0, len(r.active))
	for _, o := range r.active {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.VendorID != "" && o.VendorID != f.VendorID {
			continue
		}
		out = append(out, *copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset != nil {
		if *f.Offset >= len(out) {
			return []domain.Order{}, nil
		}
		out = out[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit < len(out) {
		out = out[:*f.Limit]
	}
	return out, nil
}

// GetHistory returns an archived order by ID, or nil when absent.
func (r *OrderRepo) GetHistory(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.history[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

// WithTx executes fn against the store under the write lock.
func (r *OrderRepo) WithTx(_ context.Context, fn func(tx ordertx.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&txRepo{r: r})
}

type txRepo struct {
	r *OrderRepo
}

func (t *txRepo) GetForUpdate(_ context.Context, id string) (*domain.Order, error) {
	o, ok := t.r.active[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (t *txRepo) UpdateStatus(_ context.Context, id string, to domain.OrderStatus) error {
	o, ok := t.r.active[id]
	if !ok {
		return apperr.ErrNotFound
	}
	o.Status = to
	return nil
}

func (t *txRepo) Archive(_ context.Context, o *domain.Order) error {
	if _, ok := t.r.active[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	delete(t.r.active, o.ID)
	t.r.history[o.ID] = copyOrder(o)
	return nil
}
