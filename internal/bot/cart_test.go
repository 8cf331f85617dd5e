package bot

import (
	"testing"

	"restobot/internal/menu"
	"restobot/internal/session"
)

func TestAddToCartMergesByName(t *testing.T) {
	sess := &session.Session{}
	item := menu.Item{ID: "cola", Name: "Cola", Price: 8, Emoji: "🥤"}

	for i := 0; i < 3; i++ {
		addToCart(sess, item, "drinks")
	}

	if len(sess.Cart) != 1 {
		t.Fatalf("expected one merged cart line, got %d", len(sess.Cart))
	}
	if sess.Cart[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", sess.Cart[0].Quantity)
	}
	if got := sess.Cart[0].Subtotal(); got != 24 {
		t.Fatalf("expected subtotal 24, got %d", got)
	}
}

func TestAddToCartPreservesInsertionOrder(t *testing.T) {
	sess := &session.Session{}
	addToCart(sess, menu.Item{Name: "Cola", Price: 8}, "drinks")
	addToCart(sess, menu.Item{Name: "Hummus", Price: 18}, "starters")
	addToCart(sess, menu.Item{Name: "Cola", Price: 8}, "drinks")

	if len(sess.Cart) != 2 {
		t.Fatalf("expected two lines, got %d", len(sess.Cart))
	}
	if sess.Cart[0].Name != "Cola" || sess.Cart[1].Name != "Hummus" {
		t.Fatalf("unexpected line order: %q, %q", sess.Cart[0].Name, sess.Cart[1].Name)
	}
}

func TestCartSummary(t *testing.T) {
	cart := []session.CartLine{
		{Name: "A", Price: 10, Quantity: 2},
		{Name: "B", Price: 5, Quantity: 1},
	}

	subtotal, total := cartSummary(cart, 15)
	if subtotal != 25 {
		t.Fatalf("expected subtotal 25, got %d", subtotal)
	}
	if total != 40 {
		t.Fatalf("expected total 40, got %d", total)
	}
	if total != subtotal+15 {
		t.Fatal("total must equal subtotal plus delivery fee")
	}
}

func TestCartSummaryEmpty(t *testing.T) {
	subtotal, total := cartSummary(nil, 15)
	if subtotal != 0 || total != 15 {
		t.Fatalf("expected 0/15, got %d/%d", subtotal, total)
	}
}

func TestClearCartIdempotent(t *testing.T) {
	sess := &session.Session{}
	addToCart(sess, menu.Item{Name: "Cola", Price: 8}, "drinks")

	clearCart(sess)
	clearCart(sess)
	if len(sess.Cart) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(sess.Cart))
	}
}
