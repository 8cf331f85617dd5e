package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"restobot/internal/keyboards"
	"restobot/internal/session"
	"restobot/internal/store"
)

// Permissive on purpose: digits, spaces, +, -, parentheses.
var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

const addressPrompt = `📍 Almost there!

Please send the delivery address:
(street, house number, city)

💡 Tip: the address is saved for future deliveries`

const phonePrompt = `📞 Thanks!

Now please send your phone number:
(for delivery coordination)`

const feedbackPrompt = `💬 We'd love to hear from you!

Send your feedback as a message:`

// proceedToCheckout validates the cart and either asks for a saved-address
// choice or moves the session into address collection. Selecting a saved
// address later is a branch, not a state: it lands in the same awaiting-phone
// step as a typed address.
func (c *Controller) proceedToCheckout(ctx context.Context, chatID int64, sess *session.Session) ([]Effect, error) {
	if len(sess.Cart) == 0 {
		return nil, ValidationError{Message: "❌ Your cart is empty"}
	}

	subtotal := cartSubtotal(sess.Cart)
	if subtotal < c.cfg.MinOrderAmount {
		return nil, ValidationError{Message: fmt.Sprintf(
			"❌ Minimum order is %s — add %s more",
			formatPrice(c.cfg.MinOrderAmount),
			formatPrice(c.cfg.MinOrderAmount-subtotal),
		)}
	}

	user, err := c.store.FindUserByChatID(ctx, chatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		// Degrade to asking for a fresh address; the session stays intact.
		log.Println("[CHECKOUT] [ERROR] user lookup failed:", err)
	}

	if user != nil && len(user.Addresses) > 0 {
		return []Effect{
			reply("📍 Choose a delivery address:", keyboards.Addresses(user.Addresses)),
		}, nil
	}

	sess.Awaiting = session.AwaitingAddress
	return []Effect{reply(addressPrompt, nil)}, nil
}

// selectAddress resolves a saved-address index and advances straight to phone
// collection, exactly as if the address had been typed.
func (c *Controller) selectAddress(ctx context.Context, chatID int64, sess *session.Session, indexParam string) ([]Effect, error) {
	index, err := strconv.Atoi(indexParam)
	if err != nil {
		return nil, ValidationError{Message: "❌ Address not found"}
	}

	user, findErr := c.store.FindUserByChatID(ctx, chatID)
	if findErr != nil {
		if errors.Is(findErr, store.ErrNotFound) {
			return nil, ValidationError{Message: "❌ Address not found"}
		}
		return nil, PersistenceError{Op: "address lookup", Err: findErr}
	}
	if index < 0 || index >= len(user.Addresses) {
		return nil, ValidationError{Message: "❌ Address not found"}
	}

	sess.Draft.Address = user.Addresses[index].Detail
	sess.Awaiting = session.AwaitingPhone
	return []Effect{
		reply(fmt.Sprintf("📍 Address selected: %s\n\n%s", sess.Draft.Address, phonePrompt), nil),
	}, nil
}

// requestNewAddress is the escape hatch from the saved-address keyboard.
func (c *Controller) requestNewAddress(sess *session.Session) []Effect {
	sess.Awaiting = session.AwaitingAddress
	return []Effect{reply(addressPrompt, nil)}
}

// handleAwaitingText interprets free text according to the checkout state.
// Command text (leading slash) is never consumed as input.
func (c *Controller) handleAwaitingText(ctx context.Context, msg TextMessage, sess *session.Session) ([]Effect, error) {
	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/") {
		return nil, nil
	}

	switch sess.Awaiting {
	case session.AwaitingAddress:
		// Stored verbatim; no format validation on address text.
		sess.Draft.Address = text
		sess.Awaiting = session.AwaitingPhone
		return []Effect{reply(phonePrompt, nil)}, nil

	case session.AwaitingPhone:
		if !phonePattern.MatchString(text) {
			return nil, ValidationError{Message: "❌ Please enter a valid phone number (digits only)"}
		}
		sess.Draft.Phone = text
		return c.submitOrder(ctx, msg.ChatID, msg.FirstName, sess)

	case session.AwaitingFeedback:
		sess.Awaiting = session.AwaitingNone
		log.Printf("[FEEDBACK] [INFO] chat=%d: %s", msg.ChatID, text)
		return []Effect{reply(
			"🙏 Thanks for the feedback! We read every message.",
			keyboards.MainMenu(false),
		)}, nil

	default:
		return []Effect{reply(
			"👋 Hi! I'm the ordering bot.\n\nPlease use the buttons below to navigate 🔽",
			keyboards.MainMenu(false),
		)}, nil
	}
}
