package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

type MySQLVendorStore struct {
	db *sql.DB
}

func NewMySQLVendorStore(db *sql.DB) *MySQLVendorStore {
	return &MySQLVendorStore{db: db}
}

func (s *MySQLVendorStore) Create(ctx context.Context, name, email, passwordHash string) (*models.Vendor, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO vendors (name, email, password_hash) VALUES (?, ?, ?)",
		name, email, passwordHash,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor id: %w", err)
	}

	return s.GetByID(ctx, int(id))
}

func (s *MySQLVendorStore) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var v models.Vendor
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at, updated_at FROM vendors WHERE email = ?",
		email,
	).Scan(&v.ID, &v.Name, &v.Email, &v.PasswordHash, &v.CreatedAt, &v.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor by email: %w", err)
	}
	return &v, nil
}

func (s *MySQLVendorStore) GetByID(ctx context.Context, id int) (*models.Vendor, error) {
	var v models.Vendor
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at, updated_at FROM vendors WHERE id = ?",
		id,
	).Scan(&v.ID, &v.Name, &v.Email, &v.CreatedAt, &v.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor by id: %w", err)
	}
	return &v, nil
}

func (s *MySQLVendorStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int
	err := s.db.QueryRowContext(ctx, "SELECT id FROM vendors WHERE email = ?", email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check vendor email: %w", err)
	}
	return true, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
