package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery address on a user document.
type Address struct {
	ID        string `bson:"id" json:"id"`
	Label     string `bson:"label" json:"label"`
	Detail    string `bson:"detail" json:"detail"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// User is one chat identity and its accumulated ordering stats.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID        int64              `bson:"chatId" json:"chatId"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Username      string             `bson:"username,omitempty" json:"username,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses     []Address          `bson:"addresses" json:"addresses"`
	TotalOrders   int                `bson:"totalOrders" json:"totalOrders"`
	TotalSpent    int                `bson:"totalSpent" json:"totalSpent"`
	AvgOrderValue float64            `bson:"avgOrderValue" json:"avgOrderValue"`
	LoyaltyPoints int                `bson:"loyaltyPoints" json:"loyaltyPoints"`
	IsVip         bool               `bson:"isVip" json:"isVip"`
	VipSince      *time.Time         `bson:"vipSince,omitempty" json:"vipSince,omitempty"`
	LastOrderAt   *time.Time         `bson:"lastOrderAt,omitempty" json:"lastOrderAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VIP promotion thresholds.
const (
	VipOrderThreshold = 10
	VipSpendThreshold = 500
)

// DefaultAddress returns the address flagged default, or the first one.
func (u *User) DefaultAddress() (Address, bool) {
	if len(u.Addresses) == 0 {
		return Address{}, false
	}
	for _, addr := range u.Addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return u.Addresses[0], true
}

// ApplyOrder folds a completed order into the user's stats and evaluates the
// VIP promotion. Loyalty points are accrued separately by the caller because
// the points rate is configuration, not a property of the user.
func (u *User) ApplyOrder(totalAmount int, now time.Time) {
	u.TotalOrders++
	u.TotalSpent += totalAmount
	u.AvgOrderValue = float64(u.TotalSpent) / float64(u.TotalOrders)
	u.LastOrderAt = &now
	u.UpdatedAt = now

	if u.TotalOrders >= VipOrderThreshold || u.TotalSpent >= VipSpendThreshold {
		u.IsVip = true
		if u.VipSince == nil {
			u.VipSince = &now
		}
	}
}

// LoyaltyPointsFor returns the points earned for an order total at the given
// rate (one point per pointsPerUnit currency units).
func LoyaltyPointsFor(totalAmount, pointsPerUnit int) int {
	if pointsPerUnit <= 0 {
		return 0
	}
	return totalAmount / pointsPerUnit
}
