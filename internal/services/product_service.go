package services

import (
	"context"
	"errors"

	"marketplace/internal/apperr"
	"marketplace/internal/models"
	"marketplace/internal/store"

	"github.com/rs/zerolog"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type ProductService struct {
	products store.ProductStore
	logger   zerolog.Logger
}

func NewProductService(products store.ProductStore, logger zerolog.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

func (s *ProductService) Create(ctx context.Context, vendorID int, req *models.CreateProductRequest) (*models.Product, error) {
	var fields []apperr.FieldError
	if req.Name == "" {
		fields = append(fields, apperr.Field("name", "Name is required"))
	}
	if req.Price == nil {
		fields = append(fields, apperr.Field("price", "Price must be a number"))
	} else if *req.Price < 0 {
		fields = append(fields, apperr.Field("price", "Price must be non-negative"))
	}
	if req.Stock == nil || *req.Stock < 0 {
		fields = append(fields, apperr.Field("stock", "Stock must be a non-negative integer"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	product, err := s.products.Create(ctx, &models.Product{
		Name:     req.Name,
		Price:    *req.Price,
		Stock:    *req.Stock,
		VendorID: vendorID,
	})
	if err != nil {
		s.logger.Error().Err(err).Int("vendor_id", vendorID).Msg("Error creating product")
		return nil, apperr.Internal(err)
	}

	s.logger.Info().Int("product_id", product.ID).Int("vendor_id", vendorID).Msg("Product created")
	return product, nil
}

// List paginates the caller's products. Zero, negative, and
// unparseable page/limit values clamp to the defaults; limit is
// additionally capped.
func (s *ProductService) List(ctx context.Context, vendorID, page, limit int) (*models.ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	products, err := s.products.ListByVendor(ctx, vendorID, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error().Err(err).Int("vendor_id", vendorID).Msg("Error listing products")
		return nil, apperr.Internal(err)
	}

	count, err := s.products.CountByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Int("vendor_id", vendorID).Msg("Error counting products")
		return nil, apperr.Internal(err)
	}

	return &models.ProductPage{
		Products:    products,
		TotalPages:  (count + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

// Update merges the allow-listed fields onto the stored record.
// Fields absent from the patch are untouched; the owning vendor id is
// never writable.
func (s *ProductService) Update(ctx context.Context, vendorID, productID int, patch *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.GetOwned(ctx, vendorID, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error fetching product")
		return nil, apperr.Internal(err)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}

	var fields []apperr.FieldError
	if product.Name == "" {
		fields = append(fields, apperr.Field("name", "Name is required"))
	}
	if product.Price < 0 {
		fields = append(fields, apperr.Field("price", "Price must be non-negative"))
	}
	if product.Stock < 0 {
		fields = append(fields, apperr.Field("stock", "Stock must be a non-negative integer"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error updating product")
		return nil, apperr.Internal(err)
	}

	s.logger.Info().Int("product_id", productID).Int("vendor_id", vendorID).Msg("Product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, vendorID, productID int) error {
	err := s.products.DeleteOwned(ctx, vendorID, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Product not found")
		}
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error deleting product")
		return apperr.Internal(err)
	}

	s.logger.Info().Int("product_id", productID).Int("vendor_id", vendorID).Msg("Product deleted")
	return nil
}
