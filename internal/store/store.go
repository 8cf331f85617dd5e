// Package store is the persistence boundary for users and orders. The bot
// core talks to the Store interface only; the Mongo implementation lives next
// to it, and tests substitute fakes.
package store

import (
	"context"
	"errors"

	"restobot/internal/models"
)

var (
	// ErrNotFound signals a missing user or order document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateOrderNumber signals a unique-index violation on insert.
	// Callers regenerate the number and retry rather than overwrite.
	ErrDuplicateOrderNumber = errors.New("store: duplicate order number")
)

type Store interface {
	FindUserByChatID(ctx context.Context, chatID int64) (*models.User, error)
	// SaveUser upserts the user document keyed by chat id.
	SaveUser(ctx context.Context, user *models.User) error
	InsertOrder(ctx context.Context, order *models.Order) error
	OrdersByChatID(ctx context.Context, chatID int64, limit int64) ([]models.Order, error)
	FindOrderByNumber(ctx context.Context, number string) (*models.Order, error)
}
