package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/furent/furniture-rental-backend/internal/catalog"
)

var (
	ErrProductUnknown = errors.New("producto no encontrado")
	ErrBadQuantity    = errors.New("cantidad o días de alquiler inválidos")
)

// ProductGetter is the slice of the catalog the cart needs to enrich lines.
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

// Summary is the cart preview payload. Total is recomputed from the lines on
// every call; no cached figure survives between requests.
type Summary struct {
	Items         []Item  `json:"items"`
	CantidadItems int     `json:"cantidadItems"`
	Total         float64 `json:"total"`
}

func (s *Service) Get(userID string) (Summary, error) {
	items, err := s.repo.Get(userID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(items), nil
}

func (s *Service) Add(userID, productoID string, cantidad, dias int) (Summary, error) {
	if cantidad == 0 {
		items, err := s.repo.Get(userID)
		if err != nil {
			return Summary{}, err
		}
		return summarize(items), nil
	}
	if dias <= 0 {
		return Summary{}, ErrBadQuantity
	}

	p, err := s.products.GetProduct(productoID)
	if err != nil {
		return Summary{}, ErrProductUnknown
	}

	items, err := s.repo.Put(userID, Item{
		ProductoID:   p.ID,
		Nombre:       p.Nombre,
		Imagen:       p.Imagen,
		Precio:       p.Precio,
		Cantidad:     cantidad,
		DiasAlquiler: dias,
	})
	if err != nil {
		return Summary{}, err
	}
	return summarize(items), nil
}

func (s *Service) Remove(userID, productoID string) (Summary, error) {
	items, err := s.repo.Remove(userID, productoID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(items), nil
}

func (s *Service) Clear(userID string) error {
	return s.repo.Clear(userID)
}

// Subtotal of a single line: precio * cantidad * diasAlquiler.
func Subtotal(item Item) float64 {
	sub := decimal.NewFromFloat(item.Precio).
		Mul(decimal.NewFromInt(int64(item.Cantidad))).
		Mul(decimal.NewFromInt(int64(item.DiasAlquiler)))
	f, _ := sub.Float64()
	return f
}

func summarize(items []Item) Summary {
	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(Subtotal(item)))
		count += item.Cantidad
	}
	f, _ := total.Float64()
	return Summary{Items: items, CantidadItems: count, Total: f}
}
