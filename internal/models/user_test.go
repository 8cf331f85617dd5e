package models

import (
	"testing"
	"time"
)

func TestApplyOrderUpdatesStats(t *testing.T) {
	u := &User{ChatID: 1}
	now := time.Now()

	u.ApplyOrder(100, now)
	u.ApplyOrder(50, now)

	if u.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", u.TotalOrders)
	}
	if u.TotalSpent != 150 {
		t.Fatalf("expected 150 spent, got %d", u.TotalSpent)
	}
	if u.AvgOrderValue != 75 {
		t.Fatalf("expected avg 75, got %v", u.AvgOrderValue)
	}
	if u.LastOrderAt == nil {
		t.Fatal("expected lastOrderAt to be stamped")
	}
}

func TestApplyOrderPromotesVipByOrderCount(t *testing.T) {
	u := &User{ChatID: 1, TotalOrders: 9}
	u.ApplyOrder(10, time.Now())

	if !u.IsVip {
		t.Fatal("expected VIP at 10 orders")
	}
}

func TestApplyOrderKeepsVipSince(t *testing.T) {
	since := time.Now().Add(-24 * time.Hour)
	u := &User{ChatID: 1, TotalOrders: 20, TotalSpent: 1000, IsVip: true, VipSince: &since}
	u.ApplyOrder(10, time.Now())

	if !u.VipSince.Equal(since) {
		t.Fatal("vipSince must not be overwritten on later orders")
	}
}

func TestDefaultAddress(t *testing.T) {
	u := &User{}
	if _, ok := u.DefaultAddress(); ok {
		t.Fatal("no addresses means no default")
	}

	u.Addresses = []Address{
		{ID: "a", Detail: "First"},
		{ID: "b", Detail: "Second", IsDefault: true},
	}
	addr, ok := u.DefaultAddress()
	if !ok || addr.ID != "b" {
		t.Fatalf("expected the flagged default, got %+v", addr)
	}

	u.Addresses[1].IsDefault = false
	addr, ok = u.DefaultAddress()
	if !ok || addr.ID != "a" {
		t.Fatalf("expected fallback to the first address, got %+v", addr)
	}
}
