// Package keyboards builds the button layouts the transport renders under
// replies. Actions and params mirror the webhook button-event contract.
package keyboards

import (
	"fmt"

	"restobot/internal/menu"
	"restobot/internal/models"
)

type Button struct {
	Text   string   `json:"text"`
	Action string   `json:"action"`
	Params []string `json:"params,omitempty"`
}

// Keyboard is rows of buttons, rendered top to bottom.
type Keyboard [][]Button

func btn(text, action string, params ...string) Button {
	return Button{Text: text, Action: action, Params: params}
}

func MainMenu(vip bool) Keyboard {
	kb := Keyboard{
		{btn("🍽️ Menu", "show_menu")},
		{btn("🛒 Cart", "show_cart"), btn("📋 My Orders", "my_orders")},
		{btn("📞 Contact", "contact"), btn("🆘 Help", "help")},
		{btn("💬 Feedback", "feedback")},
	}
	if vip {
		kb = append(kb, []Button{btn("👑 VIP Picks", "popular")})
	}
	return kb
}

func MenuCategories() Keyboard {
	kb := Keyboard{}
	for _, c := range menu.Categories() {
		kb = append(kb, []Button{btn(c.Name, "category", c.ID)})
	}
	kb = append(kb, []Button{btn("🔙 Main Menu", "back_to_main")})
	return kb
}

func Items(categoryID string, items []menu.Item) Keyboard {
	kb := Keyboard{}
	for i, it := range items {
		label := fmt.Sprintf("➕ %s %s - %d", it.Emoji, it.Name, it.Price)
		kb = append(kb, []Button{btn(label, "add", categoryID, fmt.Sprintf("%d", i))})
	}
	kb = append(kb,
		[]Button{btn("🛒 Cart", "show_cart")},
		[]Button{btn("🔙 Categories", "show_menu")},
	)
	return kb
}

func Cart(itemCount int) Keyboard {
	kb := Keyboard{}
	if itemCount > 0 {
		kb = append(kb,
			[]Button{btn("🗑️ Clear Cart", "clear_cart")},
			[]Button{btn("✅ Checkout", "proceed_order")},
		)
	}
	kb = append(kb,
		[]Button{btn("🍽️ Keep Shopping", "show_menu")},
		[]Button{btn("🔙 Main Menu", "back_to_main")},
	)
	return kb
}

func EmptyCart() Keyboard {
	return Keyboard{
		{btn("🍽️ To the Menu", "show_menu")},
		{btn("🔙 Main Menu", "back_to_main")},
	}
}

func Addresses(addrs []models.Address) Keyboard {
	kb := Keyboard{}
	for i, a := range addrs {
		label := fmt.Sprintf("📍 %s", a.Label)
		if a.IsDefault {
			label += " ⭐"
		}
		kb = append(kb, []Button{btn(label, "select_address", fmt.Sprintf("%d", i))})
	}
	kb = append(kb, []Button{btn("✏️ New Address", "new_address")})
	return kb
}

func OrderTracking(number string) Keyboard {
	return Keyboard{
		{btn("🔍 Order Status", "order_status", number)},
		{btn("🔙 Main Menu", "back_to_main")},
	}
}
