package models

import "time"

type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	VendorID  int       `json:"vendor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest uses pointers for the numeric fields so a
// missing value is distinguishable from an explicit zero.
type CreateProductRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

// UpdateProductRequest is the allow-list of mutable product fields.
// Absent fields are left untouched; the owning vendor is not
// reachable from a patch at all.
type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

type ProductPage struct {
	Products    []Product `json:"products"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
