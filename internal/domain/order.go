package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderItem references a catalog product at a chosen weight.
type OrderItem struct {
	ProductID string `json:"id"`
	Grams     int    `json:"grams"`
	Qty       int    `json:"qty"`
	Price     int64  `json:"price"`
}

// Order is a customer purchase record.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Address   string      `json:"address"`
	Items     []OrderItem `json:"items"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// Total sums qty * price across items.
func (o *Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += int64(it.Qty) * it.Price
	}
	return total
}

// Clone returns a deep copy so callers never share item slices with the store.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp
}
