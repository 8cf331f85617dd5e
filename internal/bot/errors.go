package bot

import "fmt"

// ValidationError is user-correctable input: empty cart at checkout, subtotal
// below minimum, malformed phone text, bad saved-address index. The session is
// left untouched and the message is shown to the user.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NotFoundError covers unknown menu items, categories and order numbers.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

// PersistenceError is an infrastructure failure talking to the store. Order
// assembly reports it without clearing the session so the user can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

// StatsUpdateError is a post-order side-effect failure. The order already
// succeeded, so this is logged and never surfaced as an order failure.
type StatsUpdateError struct {
	ChatID int64
	Err    error
}

func (e StatsUpdateError) Error() string {
	return fmt.Sprintf("stats update failed for chat %d: %v", e.ChatID, e.Err)
}

func (e StatsUpdateError) Unwrap() error {
	return e.Err
}
