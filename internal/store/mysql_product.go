package store

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace/internal/models"
)

type MySQLProductStore struct {
	db *sql.DB
}

func NewMySQLProductStore(db *sql.DB) *MySQLProductStore {
	return &MySQLProductStore{db: db}
}

func (s *MySQLProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO products (name, price, stock, vendor_id) VALUES (?, ?, ?, ?)",
		p.Name, p.Price, p.Stock, p.VendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product id: %w", err)
	}

	return s.GetOwned(ctx, p.VendorID, int(id))
}

func (s *MySQLProductStore) ListByVendor(ctx context.Context, vendorID, limit, offset int) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, stock, vendor_id, created_at, updated_at FROM products WHERE vendor_id = ? ORDER BY id LIMIT ? OFFSET ?",
		vendorID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.VendorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func (s *MySQLProductStore) CountByVendor(ctx context.Context, vendorID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE vendor_id = ?", vendorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *MySQLProductStore) GetOwned(ctx context.Context, vendorID, productID int) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, price, stock, vendor_id, created_at, updated_at FROM products WHERE id = ? AND vendor_id = ?",
		productID, vendorID,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.VendorID, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

// Update persists the mutable fields. The WHERE clause keeps the
// vendor filter so a stale caller cannot write across tenants.
func (s *MySQLProductStore) Update(ctx context.Context, p *models.Product) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE products SET name = ?, price = ?, stock = ? WHERE id = ? AND vendor_id = ?",
		p.Name, p.Price, p.Stock, p.ID, p.VendorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		// Either gone or not owned; also hit when the write is a no-op,
		// which MySQL reports as zero rows changed. Re-check existence.
		if _, err := s.GetOwned(ctx, p.VendorID, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLProductStore) DeleteOwned(ctx context.Context, vendorID, productID int) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = ? AND vendor_id = ?",
		productID, vendorID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
