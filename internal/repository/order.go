package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/ports/ordertx"
)

// OrderRepo represents order repository. Active orders live in the orders
// table; terminal orders are archived into order_history.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, customer_id, vendor_id, vendor_name, items, delivery_fee,
       eta_low_min, eta_high_min, status, delivery_code, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o     domain.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.VendorID, &o.VendorName, &items,
		&o.DeliveryFee, &o.EtaLowMin, &o.EtaHighMin, &o.Status, &o.DeliveryCode, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

func encodeItems(items []domain.Item) ([]byte, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return b, nil
}

// Create - persists a new active order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO orders (id, customer_id, vendor_id, vendor_name, items, delivery_fee,
                            eta_low_min, eta_high_min, status, delivery_code, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, o.ID, o.CustomerID, o.VendorID, o.VendorName, items, o.DeliveryFee,
		o.EtaLowMin, o.EtaHighMin, o.Status, o.DeliveryCode, o.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return nil
}

// Get - returns an active order by its ID.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// List returns active orders ordered by creation time, newest first.
// Zero-value filter fields are not applied.
func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, 5)
	where := ""
	appendCond := func(cond string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if f.Status != "" {
		appendCond("status=$%d", f.Status)
	}
	if f.CustomerID != "" {
		appendCond("customer_id=$%d", f.CustomerID)
	}
	if f.VendorID != "" {
		appendCond("vendor_id=$%d", f.VendorID)
	}

	q += where + " ORDER BY created_at DESC, id"
	if f.Limit != nil {
		args = append(args, *f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset != nil {
		args = append(args, *f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	capacity := 0
	if f.Limit != nil && *f.Limit > 0 {
		capacity = *f.Limit
	}
	out := make([]domain.Order, 0, capacity)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// GetHistory - returns an archived order by its ID.
func (r *OrderRepo) GetHistory(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, customer_id, vendor_id, vendor_name, items, delivery_fee,
               eta_low_min, eta_high_min, status, delivery_code, created_at, completed_at
        FROM order_history WHERE id=$1
    `, id)

	var (
		o     domain.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.VendorID, &o.VendorName, &items,
		&o.DeliveryFee, &o.EtaLowMin, &o.EtaHighMin, &o.Status, &o.DeliveryCode,
		&o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archived order %s: %w", id, err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *OrderRepo) WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetForUpdate - returns an active order by ID, locked for the transaction.
func (r *TxRepo) GetForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s for update: %w", id, err)
	}
	return o, nil
}

// UpdateStatus - updates the status of an active order.
func (r *TxRepo) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(to))
	if err != nil {
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// Archive - moves a terminal order from the active set into order_history.
func (r *TxRepo) Archive(ctx context.Context, o *domain.Order) error {
	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}

	ct, err := r.tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, o.ID)
	if err != nil {
		return fmt.Errorf("delete active order %s: %w", o.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", o.ID)
	}

	_, err = r.tx.Exec(ctx, `
        INSERT INTO order_history (id, customer_id, vendor_id, vendor_name, items, delivery_fee,
                                   eta_low_min, eta_high_min, status, delivery_code, created_at, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, o.ID, o.CustomerID, o.VendorID, o.VendorName, items, o.DeliveryFee,
		o.EtaLowMin, o.EtaHighMin, o.Status, o.DeliveryCode, o.CreatedAt, o.CompletedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("archive order %s: %w", o.ID, err)
	}
	return nil
}
