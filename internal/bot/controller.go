// Package bot is the conversational core: the per-user checkout state
// machine, cart aggregation and order assembly. It consumes abstract chat
// events and produces reply effects; it never touches the wire.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"restobot/internal/keyboards"
	"restobot/internal/menu"
	"restobot/internal/models"
	"restobot/internal/session"
	"restobot/internal/store"
)

// Config carries the order-economics knobs the controller needs.
type Config struct {
	RestaurantName  string
	RestaurantPhone string
	DeliveryFee     int
	MinOrderAmount  int
	PointsPerUnit   int
	WelcomeBonus    int
	DeliveryDelay   time.Duration
}

type Controller struct {
	sessions *session.Store
	store    store.Store
	cfg      Config
}

func New(sessions *session.Store, st store.Store, cfg Config) *Controller {
	return &Controller{sessions: sessions, store: st, cfg: cfg}
}

// HandleStart registers or refreshes the user and greets them. A brand-new
// user gets the welcome loyalty bonus.
func (c *Controller) HandleStart(ctx context.Context, ev UserIdentified) ([]Effect, error) {
	sess := c.sessions.GetOrCreate(ev.ChatID)
	sess.Lock()
	defer sess.Unlock()

	user, created := c.upsertUser(ctx, ev)

	var effects []Effect
	if created {
		effects = append(effects, reply(fmt.Sprintf(
			"🎉 Welcome to the family!\n\n🎁 You received %d loyalty points as a gift!\n🏆 Big spenders become VIP customers",
			c.cfg.WelcomeBonus,
		), nil))
	}

	vipText := ""
	points := 0
	vip := false
	if user != nil {
		vip = user.IsVip
		points = user.LoyaltyPoints
		if vip {
			vipText = "👑 VIP status active!"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Welcome to %s!\n\n", c.cfg.RestaurantName)
	fmt.Fprintf(&b, "👋 Hello %s! %s\n\n", ev.FirstName, vipText)
	b.WriteString("I'm the ordering bot — here to get fresh food to your door 🏠\n\n")
	fmt.Fprintf(&b, "🚚 Delivery fee: %s\n", formatPrice(c.cfg.DeliveryFee))
	fmt.Fprintf(&b, "🛒 Minimum order: %s\n", formatPrice(c.cfg.MinOrderAmount))
	if points > 0 {
		fmt.Fprintf(&b, "\n💎 Loyalty points: %d\n", points)
	}
	b.WriteString("\nPick from the menu below 👇")

	effects = append(effects, reply(b.String(), keyboards.MainMenu(vip)))
	return effects, nil
}

// upsertUser is best-effort: a store failure here must not block the
// conversation, so it degrades to an anonymous greeting.
func (c *Controller) upsertUser(ctx context.Context, ev UserIdentified) (*models.User, bool) {
	user, err := c.store.FindUserByChatID(ctx, ev.ChatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Println("[USER] [ERROR] lookup failed:", err)
		return nil, false
	}

	now := time.Now()
	if user == nil {
		user = &models.User{
			ChatID:        ev.ChatID,
			FirstName:     ev.FirstName,
			LastName:      ev.LastName,
			Username:      ev.Username,
			LoyaltyPoints: c.cfg.WelcomeBonus,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := c.store.SaveUser(ctx, user); err != nil {
			log.Println("[USER] [ERROR] create failed:", err)
			return nil, false
		}
		log.Printf("[USER] [INFO] new user registered: %s (%d)", ev.FirstName, ev.ChatID)
		return user, true
	}

	if user.FirstName != ev.FirstName || user.Username != ev.Username {
		user.FirstName = ev.FirstName
		user.Username = ev.Username
		user.UpdatedAt = now
		if err := c.store.SaveUser(ctx, user); err != nil {
			log.Println("[USER] [ERROR] update failed:", err)
		}
	}
	return user, false
}

// HandleButton dispatches a button action. Cart mutations are allowed in any
// checkout state; only free text is gated by Awaiting.
func (c *Controller) HandleButton(ctx context.Context, ev ButtonAction) ([]Effect, error) {
	sess := c.sessions.GetOrCreate(ev.ChatID)
	sess.Lock()
	defer sess.Unlock()

	switch ev.Type {
	case "show_menu":
		return []Effect{reply("🍽️ Restaurant menu\n\nPick a category:", keyboards.MenuCategories())}, nil

	case "category":
		return c.showCategory(ev.Params)

	case "add":
		return c.addItem(sess, ev.Params)

	case "show_cart":
		return c.showCart(sess), nil

	case "clear_cart":
		clearCart(sess)
		return []Effect{
			notify("🗑️ Cart cleared"),
			reply("🛒 Your cart is empty\n\nLet's add something tasty!", keyboards.EmptyCart()),
		}, nil

	case "proceed_order":
		return c.proceedToCheckout(ctx, ev.ChatID, sess)

	case "select_address":
		if len(ev.Params) < 1 {
			return nil, ValidationError{Message: "❌ Address not found"}
		}
		return c.selectAddress(ctx, ev.ChatID, sess, ev.Params[0])

	case "new_address":
		return c.requestNewAddress(sess), nil

	case "my_orders":
		return c.myOrders(ctx, ev.ChatID)

	case "order_status":
		if len(ev.Params) < 1 {
			return nil, NotFoundError{Message: "❌ Order not found"}
		}
		return c.orderStatus(ctx, ev.Params[0])

	case "popular":
		return c.popularItems(), nil

	case "back_to_main":
		// Leaving checkout via the main menu abandons input collection but
		// keeps the cart.
		sess.Awaiting = session.AwaitingNone
		return []Effect{reply(
			fmt.Sprintf("🏠 Main menu - %s\n\nPick an action:", c.cfg.RestaurantName),
			keyboards.MainMenu(false),
		)}, nil

	case "feedback":
		sess.Awaiting = session.AwaitingFeedback
		return []Effect{reply(feedbackPrompt, nil)}, nil

	case "help":
		return []Effect{reply(c.helpText(), keyboards.MainMenu(false))}, nil

	case "contact":
		return []Effect{reply(fmt.Sprintf(
			"📞 %s\n\nCall us: %s\nWe're happy to help!",
			c.cfg.RestaurantName, c.cfg.RestaurantPhone,
		), keyboards.MainMenu(false))}, nil

	default:
		return nil, ValidationError{Message: "❌ Unknown action"}
	}
}

// HandleText routes free text through the checkout state machine.
func (c *Controller) HandleText(ctx context.Context, msg TextMessage) ([]Effect, error) {
	sess := c.sessions.GetOrCreate(msg.ChatID)
	sess.Lock()
	defer sess.Unlock()

	return c.handleAwaitingText(ctx, msg, sess)
}

func (c *Controller) showCategory(params []string) ([]Effect, error) {
	if len(params) < 1 {
		return nil, NotFoundError{Message: "❌ No items found in this category"}
	}
	cat, ok := menu.Get(params[0])
	if !ok || len(cat.Items) == 0 {
		return nil, NotFoundError{Message: "❌ No items found in this category"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", cat.Name)
	for _, it := range cat.Items {
		fmt.Fprintf(&b, "%s %s\n", it.Emoji, it.Name)
		if it.Description != "" {
			fmt.Fprintf(&b, "   %s\n", it.Description)
		}
		fmt.Fprintf(&b, "   💰 %s\n\n", formatPrice(it.Price))
	}
	return []Effect{reply(b.String(), keyboards.Items(cat.ID, cat.Items))}, nil
}

func (c *Controller) addItem(sess *session.Session, params []string) ([]Effect, error) {
	if len(params) < 2 {
		return nil, NotFoundError{Message: "❌ Item not found"}
	}
	index, err := strconv.Atoi(params[1])
	if err != nil {
		return nil, NotFoundError{Message: "❌ Item not found"}
	}
	item, ok := menu.ItemAt(params[0], index)
	if !ok {
		return nil, NotFoundError{Message: "❌ Item not found"}
	}

	addToCart(sess, item, params[0])
	return []Effect{
		notify(fmt.Sprintf("✅ %s %s added to cart!", item.Emoji, item.Name)),
		reply(fmt.Sprintf("🛒 %d item(s) in cart", len(sess.Cart)), keyboards.Cart(len(sess.Cart))),
	}, nil
}

func (c *Controller) showCart(sess *session.Session) []Effect {
	if len(sess.Cart) == 0 {
		return []Effect{reply("🛒 Your cart is empty\n\nLet's add something tasty!", keyboards.EmptyCart())}
	}
	return []Effect{reply(cartMessage(sess.Cart, c.cfg.DeliveryFee), keyboards.Cart(len(sess.Cart)))}
}

func (c *Controller) myOrders(ctx context.Context, chatID int64) ([]Effect, error) {
	orders, err := c.store.OrdersByChatID(ctx, chatID, 5)
	if err != nil {
		return nil, PersistenceError{Op: "order listing", Err: err}
	}
	if len(orders) == 0 {
		return []Effect{reply("📋 No orders yet\n\nLet's get started! 🛒", keyboards.EmptyCart())}, nil
	}

	var b strings.Builder
	b.WriteString("📋 Your orders:\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "%s %s\n", statusEmoji(o.Status), o.OrderNumber)
		fmt.Fprintf(&b, "📅 %s | %s\n", o.CreatedAt.Format("02/01/2006"), formatPrice(o.TotalAmount))
		fmt.Fprintf(&b, "📊 %s\n\n", statusText(o.Status))
	}
	return []Effect{reply(b.String(), keyboards.MainMenu(false))}, nil
}

func (c *Controller) orderStatus(ctx context.Context, number string) ([]Effect, error) {
	order, err := c.store.FindOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError{Message: "❌ Order not found"}
		}
		return nil, PersistenceError{Op: "order lookup", Err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Order %s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "%s %s\n\n", statusEmoji(order.Status), statusText(order.Status))
	b.WriteString("History:\n")
	for _, entry := range order.StatusHistory {
		fmt.Fprintf(&b, "• %s — %s\n", entry.Timestamp.Format("15:04"), statusText(entry.Status))
	}
	return []Effect{reply(b.String(), keyboards.OrderTracking(order.OrderNumber))}, nil
}

func (c *Controller) popularItems() []Effect {
	var b strings.Builder
	b.WriteString("🔥 Our most popular dishes:\n\n")
	for _, it := range menu.Popular(6) {
		fmt.Fprintf(&b, "%s %s — %s\n", it.Emoji, it.Name, formatPrice(it.Price))
	}
	return []Effect{reply(b.String(), keyboards.MenuCategories())}
}

func (c *Controller) helpText() string {
	return fmt.Sprintf(`🆘 Help - %s

🛒 How to order:
1️⃣ Tap "Menu"
2️⃣ Pick a category
3️⃣ Add items to the cart
4️⃣ Checkout

💡 Tips:
• Use the buttons instead of typing
• Saved addresses speed up checkout
• Loyalty points accrue on every order

❓ Questions? Contact us!`, c.cfg.RestaurantName)
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳"
	case models.StatusConfirmed:
		return "✅"
	case models.StatusPreparing:
		return "👨‍🍳"
	case models.StatusReady:
		return "🍽️"
	case models.StatusOutForDelivery:
		return "🚚"
	case models.StatusDelivered:
		return "✅"
	case models.StatusCancelled:
		return "❌"
	default:
		return "📋"
	}
}

func statusText(status string) string {
	switch status {
	case models.StatusPending:
		return "Pending confirmation"
	case models.StatusConfirmed:
		return "Confirmed — starting preparation"
	case models.StatusPreparing:
		return "Being prepared in the kitchen"
	case models.StatusReady:
		return "Ready for delivery"
	case models.StatusOutForDelivery:
		return "Out for delivery"
	case models.StatusDelivered:
		return "Delivered"
	case models.StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
