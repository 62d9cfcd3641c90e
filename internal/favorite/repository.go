package favorite

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

// Repository keeps each user's favorite product ids.
type Repository interface {
	List(userID string) ([]string, error)
	Save(userID string, productIDs []string) error
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) List(userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	err := r.st.Get(context.Background(), store.UserKey(store.KeyFavoritesPfx, userID), &ids)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return ids, err
}

func (r *StoreRepository) Save(userID string, productIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.Set(context.Background(), store.UserKey(store.KeyFavoritesPfx, userID), productIDs)
}
