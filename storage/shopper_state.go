package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Storage implements cart.Store: carts and wishlists are stored as opaque
// JSON payloads keyed by the shopper session id. A missing row is a nil
// payload, never an error, so absent state degrades to empty upstream.

func (s *Storage) LoadCart(ctx context.Context, shopperID string) ([]byte, error) {
	return s.loadPayload(ctx, "carts", shopperID)
}

func (s *Storage) SaveCart(ctx context.Context, shopperID string, payload []byte) error {
	return s.savePayload(ctx, "carts", shopperID, payload)
}

func (s *Storage) LoadWishlist(ctx context.Context, shopperID string) ([]byte, error) {
	return s.loadPayload(ctx, "wishlists", shopperID)
}

func (s *Storage) SaveWishlist(ctx context.Context, shopperID string, payload []byte) error {
	return s.savePayload(ctx, "wishlists", shopperID, payload)
}

func (s *Storage) loadPayload(ctx context.Context, table, shopperID string) ([]byte, error) {
	// table is always one of the two fixed names above.
	query := fmt.Sprintf("SELECT payload FROM %s WHERE session_id = ?", table)

	var payload string
	err := s.db.QueryRowContext(ctx, query, shopperID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s payload: %w", table, err)
	}
	return []byte(payload), nil
}

func (s *Storage) savePayload(ctx context.Context, table, shopperID string, payload []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		table)

	if _, err := s.db.ExecContext(ctx, query, shopperID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s payload: %w", table, err)
	}
	return nil
}

// Order is a recorded checkout snapshot.
type Order struct {
	ID        string
	SessionID string
	Reference string
	Subtotal  float64
	Currency  string
	Status    string
	Payload   []byte
	CreatedAt time.Time
}

// CreateOrder records an approved checkout snapshot.
func (s *Storage) CreateOrder(ctx context.Context, o Order) error {
	if o.Currency == "" {
		o.Currency = "usd"
	}
	if o.Status == "" {
		o.Status = "pending"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, session_id, reference, subtotal, currency, status, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.SessionID, o.Reference, o.Subtotal, o.Currency, o.Status, string(o.Payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetOrder fetches one order by id.
func (s *Storage) GetOrder(ctx context.Context, id string) (Order, error) {
	var o Order
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, reference, subtotal, currency, status, payload, created_at
		FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.SessionID, &o.Reference, &o.Subtotal, &o.Currency, &o.Status, &payload, &o.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	o.Payload = []byte(payload)
	return o, nil
}

// ListOrdersBySession returns a shopper's orders, newest first.
func (s *Storage) ListOrdersBySession(ctx context.Context, sessionID string) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, reference, subtotal, currency, status, payload, created_at
		FROM orders WHERE session_id = ? ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var payload string
		if err := rows.Scan(&o.ID, &o.SessionID, &o.Reference, &o.Subtotal, &o.Currency, &o.Status, &payload, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.Payload = []byte(payload)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus moves an order through its lifecycle.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}
