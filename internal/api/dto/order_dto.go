package dto

import (
	"time"

	"github.com/shri-jewellery/storefront/internal/domain"
)

// OrderItemRequest references a catalog product. The reference is not checked against the catalog.
type OrderItemRequest struct {
	ID    string `json:"id"`
	Grams int    `json:"grams" validate:"gte=0"`
	Qty   int    `json:"qty" validate:"gte=0"`
	Price int64  `json:"price" validate:"gte=0"`
}

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	Name    string             `json:"name" validate:"required"`
	Email   string             `json:"email" validate:"omitempty,email"`
	Phone   string             `json:"phone"`
	Address string             `json:"address" validate:"required"`
	Items   []OrderItemRequest `json:"items" validate:"dive"`
}

// DomainItems converts request items.
func (r CreateOrderRequest) DomainItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.OrderItem{ProductID: it.ID, Grams: it.Grams, Qty: it.Qty, Price: it.Price})
	}
	return items
}

// CreateOrderResponse is returned with 201.
type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	TrackURL string `json:"track_url"`
}

// OrderResponse is the full order record.
type OrderResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	Items     []OrderItemRequest `json:"items"`
	Total     int64              `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt string             `json:"created_at"`
}

// NewOrderResponse maps a domain order. Timestamps are ISO-8601 UTC.
func NewOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemRequest, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemRequest{ID: it.ProductID, Grams: it.Grams, Qty: it.Qty, Price: it.Price})
	}
	return OrderResponse{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		Items:     items,
		Total:     o.Total(),
		Status:    o.Status,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// OrderStatusResponse for GET /api/order/:id/status.
type OrderStatusResponse struct {
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// MarkDeliveredResponse for POST /api/order/:id/mark_delivered.
type MarkDeliveredResponse struct {
	OK     bool               `json:"ok"`
	Status domain.OrderStatus `json:"status"`
}
