package store

import (
	"context"
	"errors"

	"marketplace/internal/models"
)

var (
	// ErrNotFound covers both truly absent rows and rows filtered out
	// by ownership; callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

type VendorStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.Vendor, error)
	// GetByEmail loads the full record including the password hash,
	// for credential checks only.
	GetByEmail(ctx context.Context, email string) (*models.Vendor, error)
	// GetByID loads the record with the password hash excluded from
	// the projection.
	GetByID(ctx context.Context, id int) (*models.Vendor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	// ListByVendor and every other read/write below filter on the
	// owning vendor id; rows owned by anyone else do not exist as far
	// as the caller is concerned.
	ListByVendor(ctx context.Context, vendorID, limit, offset int) ([]models.Product, error)
	CountByVendor(ctx context.Context, vendorID int) (int, error)
	GetOwned(ctx context.Context, vendorID, productID int) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	DeleteOwned(ctx context.Context, vendorID, productID int) error
}

type OrderStore interface {
	// ListByVendor returns orders whose product belongs to the vendor,
	// with the product reference expanded.
	ListByVendor(ctx context.Context, vendorID int) ([]models.Order, error)
	// GetWithProduct loads an order regardless of owner and reports
	// the owning vendor id of its product; the caller decides whether
	// the requester may see it.
	GetWithProduct(ctx context.Context, orderID int) (*models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error
	// Create exists for the external order-intake flow and for tests;
	// no vendor-facing endpoint uses it.
	Create(ctx context.Context, productID int) (*models.Order, error)
}

// Stores bundles the three store interfaces for wiring.
type Stores struct {
	Vendors  VendorStore
	Products ProductStore
	Orders   OrderStore
}
