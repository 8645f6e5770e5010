package domain

import "testing"

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, true},
		{"processing to delivered", OrderStatusProcessing, OrderStatusDelivered, true},
		{"shipped back to processing", OrderStatusShipped, OrderStatusProcessing, false},
		{"processing back to pending", OrderStatusProcessing, OrderStatusPending, false},
		{"same status", OrderStatusShipped, OrderStatusShipped, false},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"delivered to cancelled", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled to cancelled", OrderStatusCancelled, OrderStatusCancelled, false},
		{"cancelled to pending", OrderStatusCancelled, OrderStatusPending, false},
		{"delivered to shipped", OrderStatusDelivered, OrderStatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		if !s.IsValid() {
			t.Errorf("%s.IsValid() = false, want true", s)
		}
	}
	for _, s := range []OrderStatus{"", "pending", "TELEPORTED"} {
		if s.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", s)
		}
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 10.50},
			{Quantity: 1, UnitPrice: 4.25},
		},
	}
	if got := order.Total(); got != 25.25 {
		t.Errorf("Total() = %f, want 25.25", got)
	}
}
