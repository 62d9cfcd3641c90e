package address

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var ErrNotFound = errors.New("dirección no encontrada")

type Repository interface {
	List(userID string) ([]Address, error)
	Save(userID string, addresses []Address) error
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) List(userID string) ([]Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var addresses []Address
	err := r.st.Get(context.Background(), store.UserKey(store.KeyAddressesPfx, userID), &addresses)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return addresses, err
}

func (r *StoreRepository) Save(userID string, addresses []Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.Set(context.Background(), store.UserKey(store.KeyAddressesPfx, userID), addresses)
}
