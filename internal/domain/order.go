package domain

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderStatusRank orders the forward-only progression. CANCELLED sits outside
// the progression and is handled separately.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the order may move from s to target.
// Progression is strictly forward; CANCELLED is reachable from any
// non-terminal state. Transitions out of terminal states are rejected.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	return orderStatusRank[target] > orderStatusRank[s]
}

// Order represents a placed order. Mutated only through status transitions.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"orderItems"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the product
// price at reservation time; later price changes never alter it.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"-"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Total returns the order total from the snapshot prices
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
