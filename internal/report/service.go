package report

import (
	"github.com/furent/furniture-rental-backend/internal/rental"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProductos      int            `json:"totalProductos"`
	TotalUsuarios       int            `json:"totalUsuarios"`
	TotalAlquileres     int            `json:"totalAlquileres"`
	AlquileresPorEstado map[string]int `json:"alquileresPorEstado"`
	ResenasPendientes   int            `json:"resenasPendientes"`
	IngresosTotales     float64        `json:"ingresosTotales"`
}

// The sources are narrow views over the feature services; the report reads,
// never writes.
type (
	ProductCounter interface {
		CountProducts() (int, error)
	}
	UserCounter interface {
		CountUsers() (int, error)
	}
	RentalLister interface {
		List() ([]rental.Rental, error)
	}
	ReviewCounter interface {
		PendingCount() (int, error)
	}
)

type Service struct {
	products ProductCounter
	users    UserCounter
	rentals  RentalLister
	reviews  ReviewCounter
}

func NewService(products ProductCounter, users UserCounter, rentals RentalLister, reviews ReviewCounter) *Service {
	return &Service{products: products, users: users, rentals: rentals, reviews: reviews}
}

// Stats assembles the dashboard numbers in one pass. Revenue counts the paid
// installments of every rental.
func (s *Service) Stats() (Stats, error) {
	stats := Stats{AlquileresPorEstado: make(map[string]int)}

	var err error
	if stats.TotalProductos, err = s.products.CountProducts(); err != nil {
		return Stats{}, err
	}
	if stats.TotalUsuarios, err = s.users.CountUsers(); err != nil {
		return Stats{}, err
	}
	if stats.ResenasPendientes, err = s.reviews.PendingCount(); err != nil {
		return Stats{}, err
	}

	rentals, err := s.rentals.List()
	if err != nil {
		return Stats{}, err
	}
	stats.TotalAlquileres = len(rentals)
	for _, rent := range rentals {
		stats.AlquileresPorEstado[rent.Estado]++
		if rent.EstadoPagoParcial == rental.PaymentPaid {
			stats.IngresosTotales += rent.MontoPagoParcial
		}
		if rent.EstadoPagoFinal == rental.PaymentPaid {
			stats.IngresosTotales += rent.MontoSaldoPendiente
		}
	}
	return stats, nil
}
