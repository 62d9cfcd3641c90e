package review

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var ErrNotFound = errors.New("reseña no encontrada")

type Repository interface {
	List() ([]Review, error)
	Get(id string) (Review, error)
	Save(r Review) error
	Exists(alquilerID, productoID, usuarioID string) (bool, error)
}

type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) load() ([]Review, error) {
	var reviews []Review
	err := r.st.Get(context.Background(), store.KeyReviews, &reviews)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return reviews, err
}

func (r *StoreRepository) save(reviews []Review) error {
	return r.st.Set(context.Background(), store.KeyReviews, reviews)
}

func (r *StoreRepository) List() ([]Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *StoreRepository) Get(id string) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reviews, err := r.load()
	if err != nil {
		return Review{}, err
	}
	for _, rev := range reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *StoreRepository) Save(rev Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reviews, err := r.load()
	if err != nil {
		return err
	}
	for i, existing := range reviews {
		if existing.ID == rev.ID {
			reviews[i] = rev
			return r.save(reviews)
		}
	}
	reviews = append(reviews, rev)
	return r.save(reviews)
}

func (r *StoreRepository) Exists(alquilerID, productoID, usuarioID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reviews, err := r.load()
	if err != nil {
		return false, err
	}
	for _, rev := range reviews {
		if rev.AlquilerID == alquilerID && rev.ProductoID == productoID && rev.UsuarioID == usuarioID {
			return true, nil
		}
	}
	return false, nil
}
