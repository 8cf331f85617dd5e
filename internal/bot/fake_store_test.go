package bot

import (
	"context"

	"restobot/internal/models"
	"restobot/internal/store"
)

// fakeStore is the in-memory stand-in for the persistence boundary.
type fakeStore struct {
	users         map[int64]*models.User
	orders        []models.Order
	insertErrs    []error
	insertCalls   int
	insertNumbers []string
	findUserErr   error
	saveUserErr   error
	listErr       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]*models.User)}
}

func (f *fakeStore) FindUserByChatID(_ context.Context, chatID int64) (*models.User, error) {
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	user, ok := f.users[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	if f.saveUserErr != nil {
		return f.saveUserErr
	}
	clone := *user
	f.users[user.ChatID] = &clone
	return nil
}

func (f *fakeStore) InsertOrder(_ context.Context, order *models.Order) error {
	f.insertCalls++
	f.insertNumbers = append(f.insertNumbers, order.OrderNumber)
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeStore) OrdersByChatID(_ context.Context, chatID int64, limit int64) ([]models.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.orders[i].ChatID == chatID {
			out = append(out, f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeStore) FindOrderByNumber(_ context.Context, number string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderNumber == number {
			clone := f.orders[i]
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}
