package card

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var ErrNotFound = errors.New("tarjeta no encontrada")

// record is the persisted shape: the public view plus the sealed secrets.
type record struct {
	Card
	NumeroCifrado []byte `json:"numeroCifrado"`
	CVVCifrado    []byte `json:"cvvCifrado"`
}

type Repository interface {
	List(userID string) ([]record, error)
	Save(userID string, cards []record) error
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) List(userID string) ([]record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cards []record
	err := r.st.Get(context.Background(), store.UserKey(store.KeyCardsPfx, userID), &cards)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cards, nil
}

func (r *StoreRepository) Save(userID string, cards []record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.Set(context.Background(), store.UserKey(store.KeyCardsPfx, userID), cards)
}
