package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in fulfillment order. delivered and cancelled are terminal.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

var statusRank = map[string]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusReady:          3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
	StatusCancelled:      6,
}

// KnownStatus reports whether s is one of the order status values.
func KnownStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// TerminalStatus reports whether no further transitions are allowed from s.
func TerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanAdvanceStatus reports whether an order may move from one status to
// another. Transitions only move forward, except cancellation, which is
// allowed from any non-terminal status.
func CanAdvanceStatus(from, to string) bool {
	if !KnownStatus(from) || !KnownStatus(to) {
		return false
	}
	if TerminalStatus(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

// OrderItem is a snapshot of one cart line at submission time.
type OrderItem struct {
	Name     string `bson:"name" json:"name"`
	Price    int    `bson:"price" json:"price"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Category string `bson:"category" json:"category"`
	Emoji    string `bson:"emoji,omitempty" json:"emoji,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
	Subtotal int    `bson:"subtotal" json:"subtotal"`
}

// StatusEntry is one append-only record in an order's status history.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
}

// Order is the persisted order document. Totals are always recomputed from
// the items before insert, never taken from caller input.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber       string             `bson:"orderNumber" json:"orderNumber"`
	ChatID            int64              `bson:"chatId" json:"chatId"`
	UserName          string             `bson:"userName" json:"userName"`
	UserPhone         string             `bson:"userPhone" json:"userPhone"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Subtotal          int                `bson:"subtotal" json:"subtotal"`
	DeliveryFee       int                `bson:"deliveryFee" json:"deliveryFee"`
	Discount          int                `bson:"discount" json:"discount"`
	TotalAmount       int                `bson:"totalAmount" json:"totalAmount"`
	DeliveryAddress   string             `bson:"deliveryAddress" json:"deliveryAddress"`
	Status            string             `bson:"status" json:"status"`
	StatusHistory     []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	ActualDelivery    *time.Time         `bson:"actualDelivery,omitempty" json:"actualDelivery,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
