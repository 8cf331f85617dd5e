package bot

import (
	"fmt"
	"strings"

	"restobot/internal/menu"
	"restobot/internal/session"
)

// addToCart merges by item name: an already-present item gets its quantity
// bumped and subtotal recomputed, otherwise a fresh quantity-1 line is
// appended. Insertion order is display order.
func addToCart(sess *session.Session, item menu.Item, categoryID string) {
	for i := range sess.Cart {
		if sess.Cart[i].Name == item.Name {
			sess.Cart[i].Quantity++
			return
		}
	}
	sess.Cart = append(sess.Cart, session.CartLine{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
		Category: categoryID,
		Emoji:    item.Emoji,
	})
}

func clearCart(sess *session.Session) {
	sess.Cart = nil
}

func cartSubtotal(cart []session.CartLine) int {
	sum := 0
	for _, line := range cart {
		sum += line.Subtotal()
	}
	return sum
}

// cartSummary is pure: total is always subtotal plus the fee.
func cartSummary(cart []session.CartLine, deliveryFee int) (subtotal, total int) {
	subtotal = cartSubtotal(cart)
	return subtotal, subtotal + deliveryFee
}

func formatPrice(amount int) string {
	return fmt.Sprintf("₪%d", amount)
}

func cartMessage(cart []session.CartLine, deliveryFee int) string {
	var b strings.Builder
	b.WriteString("🛒 Your cart:\n\n")

	for _, line := range cart {
		fmt.Fprintf(&b, "%s %s\n", line.Emoji, line.Name)
		fmt.Fprintf(&b, "   %d × %s = %s\n", line.Quantity, formatPrice(line.Price), formatPrice(line.Subtotal()))
		if line.Notes != "" {
			fmt.Fprintf(&b, "   📝 %s\n", line.Notes)
		}
		b.WriteString("\n")
	}

	subtotal, total := cartSummary(cart, deliveryFee)
	fmt.Fprintf(&b, "💰 Items: %s\n", formatPrice(subtotal))
	fmt.Fprintf(&b, "🚚 Delivery: %s\n", formatPrice(deliveryFee))
	fmt.Fprintf(&b, "💳 Total: %s", formatPrice(total))
	return b.String()
}
