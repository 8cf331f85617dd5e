package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"restobot/internal/keyboards"
	"restobot/internal/models"
	"restobot/internal/session"
	"restobot/internal/store"
)

const orderNumberAttempts = 3

// generateOrderNumber derives a human-readable number from the current time.
// Uniqueness is not guaranteed by construction; the store's unique index is
// the authority and collisions surface as ErrDuplicateOrderNumber.
func generateOrderNumber(t time.Time) string {
	return "ORD" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// buildOrder snapshots the cart into an order document, recomputing every
// total from the lines. Nothing cached in the session is trusted.
func (c *Controller) buildOrder(sess *session.Session, chatID int64, userName string, now time.Time) *models.Order {
	items := make([]models.OrderItem, 0, len(sess.Cart))
	subtotal := 0
	for _, line := range sess.Cart {
		lineTotal := line.Subtotal()
		subtotal += lineTotal
		items = append(items, models.OrderItem{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Category: line.Category,
			Emoji:    line.Emoji,
			Notes:    line.Notes,
			Subtotal: lineTotal,
		})
	}

	discount := 0
	return &models.Order{
		ChatID:          chatID,
		UserName:        userName,
		UserPhone:       sess.Draft.Phone,
		Items:           items,
		Subtotal:        subtotal,
		DeliveryFee:     c.cfg.DeliveryFee,
		Discount:        discount,
		TotalAmount:     subtotal + c.cfg.DeliveryFee - discount,
		DeliveryAddress: sess.Draft.Address,
		Status:          models.StatusPending,
		StatusHistory: []models.StatusEntry{
			{Status: models.StatusPending, Timestamp: now},
		},
		EstimatedDelivery: now.Add(c.cfg.DeliveryDelay),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// submitOrder persists the order and, only on success, applies user stats and
// resets the session. An insert failure leaves cart and draft untouched so
// the user can retry.
func (c *Controller) submitOrder(ctx context.Context, chatID int64, userName string, sess *session.Session) ([]Effect, error) {
	now := time.Now()
	order := c.buildOrder(sess, chatID, userName, now)

	var insertErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if attempt > 0 {
			// The number is millisecond-derived; a retry within the same
			// millisecond would regenerate the identical number.
			time.Sleep(time.Millisecond)
		}
		order.OrderNumber = generateOrderNumber(time.Now())
		insertErr = c.store.InsertOrder(ctx, order)
		if !errors.Is(insertErr, store.ErrDuplicateOrderNumber) {
			break
		}
		log.Println("[ORDER] [WARN] order number collision, regenerating:", order.OrderNumber)
	}
	if insertErr != nil {
		return nil, PersistenceError{Op: "order insert", Err: insertErr}
	}

	user, statsErr := c.applyOrderStats(ctx, chatID, order, sess.Draft)
	if statsErr != nil {
		// The order already succeeded; never surfaced as an order failure.
		log.Println("[ORDER] [ERROR]", StatsUpdateError{ChatID: chatID, Err: statsErr}.Error())
	}

	clearCart(sess)
	sess.Draft = session.Draft{}
	sess.Awaiting = session.AwaitingNone

	log.Printf("[ORDER] [INFO] order created: %s chat=%d total=%d", order.OrderNumber, chatID, order.TotalAmount)
	return c.confirmationEffects(order, user), nil
}

// applyOrderStats is the best-effort post-order side effect: counters, loyalty
// points, VIP evaluation, and remembering the delivery address and phone.
func (c *Controller) applyOrderStats(ctx context.Context, chatID int64, order *models.Order, draft session.Draft) (*models.User, error) {
	user, err := c.store.FindUserByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	user.ApplyOrder(order.TotalAmount, now)
	user.LoyaltyPoints += models.LoyaltyPointsFor(order.TotalAmount, c.cfg.PointsPerUnit)
	if draft.Phone != "" {
		user.Phone = draft.Phone
	}
	rememberAddress(user, draft.Address)

	if err := c.store.SaveUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

func rememberAddress(user *models.User, detail string) {
	if detail == "" {
		return
	}
	for _, addr := range user.Addresses {
		if addr.Detail == detail {
			return
		}
	}
	user.Addresses = append(user.Addresses, models.Address{
		ID:        uuid.NewString(),
		Label:     fmt.Sprintf("Address %d", len(user.Addresses)+1),
		Detail:    detail,
		IsDefault: len(user.Addresses) == 0,
	})
}

func (c *Controller) confirmationEffects(order *models.Order, user *models.User) []Effect {
	var b strings.Builder
	b.WriteString("🎉 Order placed!\n\n")
	fmt.Fprintf(&b, "📋 Order number: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "📍 Address: %s\n", order.DeliveryAddress)
	fmt.Fprintf(&b, "📞 Phone: %s\n", order.UserPhone)
	fmt.Fprintf(&b, "💰 Total: %s\n", formatPrice(order.TotalAmount))
	fmt.Fprintf(&b, "🕐 Estimated delivery: %s\n", order.EstimatedDelivery.Format("15:04"))
	if user != nil && user.LoyaltyPoints > 0 {
		fmt.Fprintf(&b, "\n💎 Loyalty points: %d\n", user.LoyaltyPoints)
	}
	b.WriteString("\n✅ The kitchen has your order and is getting started!\nThanks for choosing us 🙏")

	vip := user != nil && user.IsVip
	tracking := fmt.Sprintf(
		"🔍 Tracking order %s:\n\n⏳ Current status: pending confirmation\n📞 Questions? %s",
		order.OrderNumber, c.cfg.RestaurantPhone,
	)
	return []Effect{
		reply(b.String(), keyboards.MainMenu(vip)),
		reply(tracking, keyboards.OrderTracking(order.OrderNumber)),
	}
}
