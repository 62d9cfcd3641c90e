package report

import (
	"testing"

	"github.com/furent/furniture-rental-backend/internal/rental"
)

type fakeCounts struct {
	products int
	users    int
	pending  int
	rentals  []rental.Rental
}

func (f fakeCounts) CountProducts() (int, error)    { return f.products, nil }
func (f fakeCounts) CountUsers() (int, error)       { return f.users, nil }
func (f fakeCounts) PendingCount() (int, error)     { return f.pending, nil }
func (f fakeCounts) List() ([]rental.Rental, error) { return f.rentals, nil }

func TestStatsAggregation(t *testing.T) {
	fake := fakeCounts{
		products: 12,
		users:    4,
		pending:  3,
		rentals: []rental.Rental{
			{Estado: rental.StatusConfirmed, EstadoPagoParcial: rental.PaymentPaid, MontoPagoParcial: 100000, EstadoPagoFinal: rental.PaymentPending},
			{Estado: rental.StatusCompleted, EstadoPagoParcial: rental.PaymentPaid, MontoPagoParcial: 50000, EstadoPagoFinal: rental.PaymentPaid, MontoSaldoPendiente: 50000},
			{Estado: rental.StatusPending, EstadoPagoParcial: rental.PaymentPending, EstadoPagoFinal: rental.PaymentPending},
		},
	}
	service := NewService(fake, fake, fake, fake)

	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalProductos != 12 || stats.TotalUsuarios != 4 || stats.ResenasPendientes != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TotalAlquileres != 3 {
		t.Fatalf("total alquileres = %d", stats.TotalAlquileres)
	}
	if stats.AlquileresPorEstado[rental.StatusConfirmed] != 1 || stats.AlquileresPorEstado[rental.StatusPending] != 1 {
		t.Fatalf("por estado = %v", stats.AlquileresPorEstado)
	}
	// 100000 + 50000 + 50000
	if stats.IngresosTotales != 200000 {
		t.Fatalf("ingresos = %v, want 200000", stats.IngresosTotales)
	}
}
