package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/furent/furniture-rental-backend/internal/store"
)

var (
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrCategoryNotFound = errors.New("categoría no encontrada")
)

type Repository interface {
	ListProducts() ([]Product, error)
	GetProduct(id string) (Product, error)
	SaveProduct(p Product) error
	DeleteProduct(id string) error

	ListCategories() ([]Category, error)
	SaveCategory(c Category) error
	DeleteCategory(id string) error
}

// StoreRepository holds each collection as one document in the shared store.
type StoreRepository struct {
	mu sync.Mutex
	st store.Store
}

func NewStoreRepository(st store.Store) *StoreRepository {
	return &StoreRepository{st: st}
}

func (r *StoreRepository) loadProducts() ([]Product, error) {
	var products []Product
	err := r.st.Get(context.Background(), store.KeyProducts, &products)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return products, err
}

func (r *StoreRepository) loadCategories() ([]Category, error) {
	var categories []Category
	err := r.st.Get(context.Background(), store.KeyCategories, &categories)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return categories, err
}

func (r *StoreRepository) ListProducts() ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadProducts()
}

func (r *StoreRepository) GetProduct(id string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (r *StoreRepository) SaveProduct(p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts()
	if err != nil {
		return err
	}
	for i, existing := range products {
		if existing.ID == p.ID {
			products[i] = p
			return r.st.Set(context.Background(), store.KeyProducts, products)
		}
	}
	products = append(products, p)
	return r.st.Set(context.Background(), store.KeyProducts, products)
}

func (r *StoreRepository) DeleteProduct(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts()
	if err != nil {
		return err
	}
	for i, p := range products {
		if p.ID == id {
			products = append(products[:i], products[i+1:]...)
			return r.st.Set(context.Background(), store.KeyProducts, products)
		}
	}
	return ErrProductNotFound
}

func (r *StoreRepository) ListCategories() ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadCategories()
}

func (r *StoreRepository) SaveCategory(c Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories, err := r.loadCategories()
	if err != nil {
		return err
	}
	for i, existing := range categories {
		if existing.ID == c.ID {
			categories[i] = c
			return r.st.Set(context.Background(), store.KeyCategories, categories)
		}
	}
	categories = append(categories, c)
	return r.st.Set(context.Background(), store.KeyCategories, categories)
}

func (r *StoreRepository) DeleteCategory(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories, err := r.loadCategories()
	if err != nil {
		return err
	}
	for i, c := range categories {
		if c.ID == id {
			categories = append(categories[:i], categories[i+1:]...)
			return r.st.Set(context.Background(), store.KeyCategories, categories)
		}
	}
	return ErrCategoryNotFound
}
