package store

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace/internal/models"
)

type MySQLOrderStore struct {
	db *sql.DB
}

func NewMySQLOrderStore(db *sql.DB) *MySQLOrderStore {
	return &MySQLOrderStore{db: db}
}

func (s *MySQLOrderStore) ListByVendor(ctx context.Context, vendorID int) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o.product_id, o.status, o.created_at, o.updated_at, p.id, p.name, p.price
		 FROM orders o
		 JOIN products p ON p.id = o.product_id
		 WHERE p.vendor_id = ?
		 ORDER BY o.id`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var p models.OrderProduct
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Product = &p
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (s *MySQLOrderStore) GetWithProduct(ctx context.Context, orderID int) (*models.Order, int, error) {
	var o models.Order
	var p models.OrderProduct
	var ownerID int
	err := s.db.QueryRowContext(ctx,
		`SELECT o.id, o.product_id, o.status, o.created_at, o.updated_at, p.id, p.name, p.price, p.vendor_id
		 FROM orders o
		 JOIN products p ON p.id = o.product_id
		 WHERE o.id = ?`,
		orderID,
	).Scan(&o.ID, &o.ProductID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &p.ID, &p.Name, &p.Price, &ownerID)

	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query order: %w", err)
	}
	o.Product = &p
	return &o, ownerID, nil
}

func (s *MySQLOrderStore) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?",
		string(status), orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (s *MySQLOrderStore) Create(ctx context.Context, productID int) (*models.Order, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO orders (product_id, status) VALUES (?, ?)",
		productID, string(models.OrderStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order id: %w", err)
	}

	order, _, err := s.GetWithProduct(ctx, int(id))
	return order, err
}

// NewMySQL wires the three stores over one connection pool.
func NewMySQL(db *sql.DB) Stores {
	return Stores{
		Vendors:  NewMySQLVendorStore(db),
		Products: NewMySQLProductStore(db),
		Orders:   NewMySQLOrderStore(db),
	}
}
