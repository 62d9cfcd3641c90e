package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidProduct = errors.New("datos del producto inválidos")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts() ([]Product, error) {
	return s.repo.ListProducts()
}

func (s *Service) GetProduct(id string) (Product, error) {
	return s.repo.GetProduct(id)
}

func (s *Service) CountProducts() (int, error) {
	products, err := s.repo.ListProducts()
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

func (s *Service) CreateProduct(p Product) (Product, error) {
	if strings.TrimSpace(p.Nombre) == "" || p.Precio < 0 {
		return Product{}, ErrInvalidProduct
	}
	p.ID = uuid.NewString()
	if p.Estado == "" {
		p.Estado = ProductActive
	}
	if err := s.repo.SaveProduct(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(id string, p Product) (Product, error) {
	if _, err := s.repo.GetProduct(id); err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(p.Nombre) == "" || p.Precio < 0 {
		return Product{}, ErrInvalidProduct
	}
	p.ID = id
	if err := s.repo.SaveProduct(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(id string) error {
	return s.repo.DeleteProduct(id)
}

// ListCategories recomputes the per-category product count on every read.
func (s *Service) ListCategories() ([]Category, error) {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListProducts()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Categoria]++
	}
	for i := range categories {
		categories[i].CantidadProductos = counts[categories[i].Nombre]
	}
	return categories, nil
}

func (s *Service) CreateCategory(c Category) (Category, error) {
	if strings.TrimSpace(c.Nombre) == "" {
		return Category{}, ErrInvalidProduct
	}
	c.ID = uuid.NewString()
	if err := s.repo.SaveCategory(c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(id string, c Category) (Category, error) {
	c.ID = id
	if strings.TrimSpace(c.Nombre) == "" {
		return Category{}, ErrInvalidProduct
	}
	if err := s.repo.SaveCategory(c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(id string) error {
	return s.repo.DeleteCategory(id)
}
