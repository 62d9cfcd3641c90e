package rental

import (
	"github.com/shopspring/decimal"

	"github.com/furent/furniture-rental-backend/internal/cart"
)

// Rental lifecycle states. Payments are split 50/50: the partial installment
// is due once the rental is confirmed, the final one once it completes.
const (
	StatusPending   = "PENDIENTE"
	StatusConfirmed = "CONFIRMADO"
	StatusOngoing   = "EN_CURSO"
	StatusCompleted = "COMPLETADO"
	StatusCancelled = "CANCELADO"

	PaymentPending = "PENDIENTE"
	PaymentPaid    = "PAGADO"
)

type Rental struct {
	ID            string      `json:"id"`
	UsuarioID     string      `json:"usuarioId"`
	UsuarioNombre string      `json:"usuarioNombre,omitempty"`
	Items         []cart.Item `json:"items"`
	Total         float64     `json:"total"`
	Estado        string      `json:"estado"`

	FechaAlquiler    string `json:"fechaAlquiler"`
	FechaInicio      string `json:"fechaInicio"`
	FechaFin         string `json:"fechaFin"`
	DireccionEntrega string `json:"direccionEntrega"`
	Notas            string `json:"notasAdicionales,omitempty"`

	MontoPagoParcial    float64 `json:"montoPagoParcial"`
	MontoSaldoPendiente float64 `json:"montoSaldoPendiente"`
	EstadoPagoParcial   string  `json:"estadoPagoParcial"`
	EstadoPagoFinal     string  `json:"estadoPagoFinal"`
	FechaPagoParcial    string  `json:"fechaPagoParcial,omitempty"`
	FechaPagoFinal      string  `json:"fechaPagoFinal,omitempty"`
	PagoContraEntrega   bool    `json:"pagoContraEntrega"`
}

// RecalcTotals rebuilds the total from the line items and derives the two
// installment amounts. Stored totals are never trusted across renders.
func (r *Rental) RecalcTotals() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(decimal.NewFromFloat(cart.Subtotal(item)))
	}
	half := total.Div(decimal.NewFromInt(2))

	r.Total, _ = total.Float64()
	r.MontoPagoParcial, _ = half.Float64()
	r.MontoSaldoPendiente, _ = total.Sub(half).Float64()
}

// validTransitions define the admin status flow; cancellation is only
// possible before the furniture is out the door.
var validTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
