package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace/internal/models"
)

// In-memory implementations of the store interfaces, used by tests
// and local development without a database. Semantics mirror the
// MySQL stores: ownership filtering, ErrNotFound on filtered misses,
// ErrDuplicate on the email unique constraint.

type MemoryVendorStore struct {
	mu      sync.Mutex
	nextID  int
	vendors map[int]*models.Vendor
}

func NewMemoryVendorStore() *MemoryVendorStore {
	return &MemoryVendorStore{nextID: 1, vendors: make(map[int]*models.Vendor)}
}

func (s *MemoryVendorStore) Create(ctx context.Context, name, email, passwordHash string) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.vendors {
		if v.Email == email {
			return nil, ErrDuplicate
		}
	}

	now := time.Now()
	v := &models.Vendor{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.vendors[v.ID] = v
	s.nextID++

	out := *v
	out.PasswordHash = ""
	return &out, nil
}

func (s *MemoryVendorStore) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.vendors {
		if v.Email == email {
			out := *v
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryVendorStore) GetByID(ctx context.Context, id int) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vendors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *v
	out.PasswordHash = ""
	return &out, nil
}

func (s *MemoryVendorStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.vendors {
		if v.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Delete exists so tests can simulate a vendor removed after token
// issuance.
func (s *MemoryVendorStore) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vendors, id)
}

type MemoryProductStore struct {
	mu       sync.Mutex
	nextID   int
	products map[int]*models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{nextID: 1, products: make(map[int]*models.Product)}
}

func (s *MemoryProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := &models.Product{
		ID:        s.nextID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		VendorID:  p.VendorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products[stored.ID] = stored
	s.nextID++

	out := *stored
	return &out, nil
}

func (s *MemoryProductStore) ownedIDs(vendorID int) []int {
	ids := []int{}
	for id, p := range s.products {
		if p.VendorID == vendorID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s *MemoryProductStore) ListByVendor(ctx context.Context, vendorID, limit, offset int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.ownedIDs(vendorID)
	out := []models.Product{}
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *s.products[ids[i]])
	}
	return out, nil
}

func (s *MemoryProductStore) CountByVendor(ctx context.Context, vendorID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ownedIDs(vendorID)), nil
}

func (s *MemoryProductStore) GetOwned(ctx context.Context, vendorID, productID int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.VendorID != vendorID {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[p.ID]
	if !ok || stored.VendorID != p.VendorID {
		return ErrNotFound
	}
	stored.Name = p.Name
	stored.Price = p.Price
	stored.Stock = p.Stock
	stored.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProductStore) DeleteOwned(ctx context.Context, vendorID, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.VendorID != vendorID {
		return ErrNotFound
	}
	delete(s.products, productID)
	return nil
}

type MemoryOrderStore struct {
	mu       sync.Mutex
	nextID   int
	orders   map[int]*models.Order
	products *MemoryProductStore
}

func NewMemoryOrderStore(products *MemoryProductStore) *MemoryOrderStore {
	return &MemoryOrderStore{nextID: 1, orders: make(map[int]*models.Order), products: products}
}

func (s *MemoryOrderStore) expand(o *models.Order) (*models.Order, int, bool) {
	p, ok := s.products.products[o.ProductID]
	if !ok {
		return nil, 0, false
	}
	out := *o
	out.Product = &models.OrderProduct{ID: p.ID, Name: p.Name, Price: p.Price}
	return &out, p.VendorID, true
}

func (s *MemoryOrderStore) ListByVendor(ctx context.Context, vendorID int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.mu.Lock()
	defer s.products.mu.Unlock()

	ids := []int{}
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := []models.Order{}
	for _, id := range ids {
		expanded, ownerID, ok := s.expand(s.orders[id])
		if ok && ownerID == vendorID {
			out = append(out, *expanded)
		}
	}
	return out, nil
}

func (s *MemoryOrderStore) GetWithProduct(ctx context.Context, orderID int) (*models.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.mu.Lock()
	defer s.products.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, 0, ErrNotFound
	}
	expanded, ownerID, ok := s.expand(o)
	if !ok {
		return nil, 0, ErrNotFound
	}
	return expanded, ownerID, nil
}

func (s *MemoryOrderStore) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryOrderStore) Create(ctx context.Context, productID int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	o := &models.Order{
		ID:        s.nextID,
		ProductID: productID,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[o.ID] = o
	s.nextID++

	out := *o
	return &out, nil
}

// NewMemory wires the three in-memory stores together.
func NewMemory() Stores {
	products := NewMemoryProductStore()
	return Stores{
		Vendors:  NewMemoryVendorStore(),
		Products: products,
		Orders:   NewMemoryOrderStore(products),
	}
}
