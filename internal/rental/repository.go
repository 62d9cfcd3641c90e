package rental

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var ErrNotFound = errors.New("alquiler no encontrado")

type Repository interface {
	List() ([]Rental, error)
	ListByUser(userID string) ([]Rental, error)
	Get(id string) (Rental, error)
	Save(r Rental) error
	Delete(id string) error
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) load() ([]Rental, error) {
	var rentals []Rental
	err := r.st.Get(context.Background(), store.KeyOrders, &rentals)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return rentals, err
}

func (r *StoreRepository) save(rentals []Rental) error {
	return r.st.Set(context.Background(), store.KeyOrders, rentals)
}

func (r *StoreRepository) List() ([]Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *StoreRepository) ListByUser(userID string) ([]Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rentals, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []Rental
	for _, rent := range rentals {
		if rent.UsuarioID == userID {
			out = append(out, rent)
		}
	}
	return out, nil
}

func (r *StoreRepository) Get(id string) (Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rentals, err := r.load()
	if err != nil {
		return Rental{}, err
	}
	for _, rent := range rentals {
		if rent.ID == id {
			return rent, nil
		}
	}
	return Rental{}, ErrNotFound
}

func (r *StoreRepository) Save(rent Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rentals, err := r.load()
	if err != nil {
		return err
	}
	for i, existing := range rentals {
		if existing.ID == rent.ID {
			rentals[i] = rent
			return r.save(rentals)
		}
	}
	rentals = append(rentals, rent)
	return r.save(rentals)
}

func (r *StoreRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rentals, err := r.load()
	if err != nil {
		return err
	}
	for i, rent := range rentals {
		if rent.ID == id {
			rentals = append(rentals[:i], rentals[i+1:]...)
			return r.save(rentals)
		}
	}
	return ErrNotFound
}
