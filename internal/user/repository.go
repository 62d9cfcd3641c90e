package user

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var (
	ErrNotFound           = errors.New("usuario no encontrado")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrEmailExists        = errors.New("el correo ya está registrado")
)

type Repository interface {
	List() ([]User, error)
	GetByID(id string) (User, error)
	GetByEmail(correo string) (User, error)
	Create(u User) (User, error)
	Update(id string, u User) (User, error)
	Delete(id string) error
}

// StoreRepository keeps the user collection as a single document in the
// shared store, the server-side stand-in for the dashboard's local tables.
type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) load() ([]User, error) {
	var users []User
	err := r.st.Get(context.Background(), store.KeyUsers, &users)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return users, err
}

func (r *StoreRepository) save(users []User) error {
	return r.st.Set(context.Background(), store.KeyUsers, users)
}

func (r *StoreRepository) List() ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *StoreRepository) GetByID(id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *StoreRepository) GetByEmail(correo string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Correo == correo {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *StoreRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	users = append(users, u)
	if err := r.save(users); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *StoreRepository) Update(id string, updated User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	for i, u := range users {
		if u.ID == id {
			updated.ID = id
			if updated.Password == "" {
				updated.Password = u.Password
			}
			users[i] = updated
			if err := r.save(users); err != nil {
				return User{}, err
			}
			return updated, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *StoreRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID == id {
			users = append(users[:i], users[i+1:]...)
			return r.save(users)
		}
	}
	return ErrNotFound
}
