package favorite

import (
	"errors"

	"github.com/furent/furniture-rental-backend/internal/catalog"
)

var ErrMissingProduct = errors.New("producto requerido")

// ProductGetter resolves favorite ids to catalog products for listings.
type ProductGetter interface {
	GetProduct(id string) (catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductGetter
}

func NewService(repo Repository, products ProductGetter) *Service {
	return &Service{repo: repo, products: products}
}

// Toggle flips a product in and out of the user's favorites and reports the
// resulting state.
func (s *Service) Toggle(userID, productID string) (bool, error) {
	if productID == "" {
		return false, ErrMissingProduct
	}
	if _, err := s.products.GetProduct(productID); err != nil {
		return false, err
	}
	ids, err := s.repo.List(userID)
	if err != nil {
		return false, err
	}
	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, s.repo.Save(userID, ids)
		}
	}
	ids = append(ids, productID)
	return true, s.repo.Save(userID, ids)
}

func (s *Service) IsFavorite(userID, productID string) (bool, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) ListIDs(userID string) ([]string, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ListProducts resolves favorites against the catalog, dropping products
// that no longer exist.
func (s *Service) ListProducts(userID string) ([]catalog.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetProduct(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
