package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusShipped OrderStatus = "shipped"
)

type Order struct {
	ID        int           `json:"id"`
	ProductID int           `json:"product_id"`
	Product   *OrderProduct `json:"product,omitempty"`
	Status    OrderStatus   `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OrderProduct is the expanded product reference carried on order
// responses.
type OrderProduct struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ShipOrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
