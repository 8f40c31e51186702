package services

import (
	"context"
	"errors"

	"marketplace/internal/apperr"
	"marketplace/internal/models"
	"marketplace/internal/store"

	"github.com/rs/zerolog"
)

type OrderService struct {
	orders store.OrderStore
	logger zerolog.Logger
}

func NewOrderService(orders store.OrderStore, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		logger: logger,
	}
}

func (s *OrderService) List(ctx context.Context, vendorID int) ([]models.Order, error) {
	orders, err := s.orders.ListByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error().Err(err).Int("vendor_id", vendorID).Msg("Error listing orders")
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

// Ship marks an order as shipped after verifying ownership through
// the order's product. A missing order and a foreign order are both
// reported as Forbidden, matching the single guard on this path.
// Shipping an already-shipped order re-persists the status; that is
// accepted behavior, not a guard to add.
func (s *OrderService) Ship(ctx context.Context, vendorID, orderID int) (*models.Order, error) {
	order, ownerID, err := s.orders.GetWithProduct(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Forbidden("Unauthorized")
		}
		s.logger.Error().Err(err).Int("order_id", orderID).Msg("Error fetching order")
		return nil, apperr.Internal(err)
	}

	if ownerID != vendorID {
		s.logger.Warn().Int("order_id", orderID).Int("vendor_id", vendorID).Msg("Ship attempt on foreign order")
		return nil, apperr.Forbidden("Unauthorized")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, models.OrderStatusShipped); err != nil {
		s.logger.Error().Err(err).Int("order_id", orderID).Msg("Error updating order status")
		return nil, apperr.Internal(err)
	}

	order.Status = models.OrderStatusShipped
	s.logger.Info().Int("order_id", orderID).Int("vendor_id", vendorID).Msg("Order shipped")
	return order, nil
}
