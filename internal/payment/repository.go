package payment

import (
	"context"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

type Repository interface {
	ListByUser(userID string) ([]Payment, error)
	Save(p Payment) error
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) load() ([]Payment, error) {
	var payments []Payment
	err := r.st.Get(context.Background(), store.KeyPayments, &payments)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return payments, err
}

func (r *StoreRepository) ListByUser(userID string) ([]Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []Payment
	for _, p := range payments {
		if p.UsuarioID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *StoreRepository) Save(p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments, err := r.load()
	if err != nil {
		return err
	}
	payments = append(payments, p)
	return r.st.Set(context.Background(), store.KeyPayments, payments)
}
