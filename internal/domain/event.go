package domain

import (
	"strconv"
	"time"
)

// OrderEventType identifies an order lifecycle event
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventCancelled     OrderEventType = "order.cancelled"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is the payload published to the event stream for every order
// lifecycle change.
type OrderEvent struct {
	EventID   string         `json:"event_id"`
	EventType OrderEventType `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	Order     *Order         `json:"order"`
}

// NewOrderEvent creates an event for the given order
func NewOrderEvent(eventType OrderEventType, order *Order, eventID string) *OrderEvent {
	return &OrderEvent{
		EventID:   eventID,
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Order:     order,
	}
}

// Key returns the partition key. Events for one order stay ordered.
func (e *OrderEvent) Key() string {
	if e.Order == nil {
		return e.EventID
	}
	return strconv.FormatInt(e.Order.ID, 10)
}
