package cart

import (
	"errors"
	"sync"
)

var ErrItemNotFound = errors.New("el producto no está en el carrito")

// Item is a cart line. The displayed subtotal is always recomputed as
// precio * cantidad * diasAlquiler; it is never stored.
type Item struct {
	ProductoID   string  `json:"productoId" form:"productoId"`
	Nombre       string  `json:"nombreProducto"`
	Imagen       string  `json:"imagenProducto,omitempty"`
	Precio       float64 `json:"precioProducto"`
	Cantidad     int     `json:"cantidad" form:"cantidad"`
	DiasAlquiler int     `json:"diasAlquiler" form:"diasAlquiler"`
}

// Repository holds one cart per user. Duplicate adds merge quantities.
type Repository interface {
	Get(userID string) ([]Item, error)
	Put(userID string, item Item) ([]Item, error)
	Remove(userID, productoID string) ([]Item, error)
	Clear(userID string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string][]Item)}
}

func (r *InMemoryRepository) snapshot(userID string) []Item {
	items := r.carts[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func (r *InMemoryRepository) Get(userID string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Put(userID string, item Item) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[userID]
	for i, existing := range items {
		if existing.ProductoID == item.ProductoID {
			existing.Cantidad += item.Cantidad
			if item.DiasAlquiler > 0 {
				existing.DiasAlquiler = item.DiasAlquiler
			}
			// dropping the quantity to zero removes the line
			if existing.Cantidad <= 0 {
				items = append(items[:i], items[i+1:]...)
			} else {
				items[i] = existing
			}
			r.carts[userID] = items
			return r.snapshot(userID), nil
		}
	}
	if item.Cantidad > 0 {
		r.carts[userID] = append(items, item)
	}
	return r.snapshot(userID), nil
}

func (r *InMemoryRepository) Remove(userID, productoID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[userID]
	for i, existing := range items {
		if existing.ProductoID == productoID {
			r.carts[userID] = append(items[:i], items[i+1:]...)
			return r.snapshot(userID), nil
		}
	}
	return nil, ErrItemNotFound
}

func (r *InMemoryRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
