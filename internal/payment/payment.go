package payment

// Payment phases. A rental is paid in two installments of half the total:
// PARCIAL once confirmed, FINAL once the rental completes.
const (
	PhasePartial = "PARCIAL"
	PhaseFinal   = "FINAL"

	MethodNewCard   = "TARJETA"
	MethodSavedCard = "TARJETA_GUARDADA"
)

// Notification is derived on every poll from current rental state and never
// persisted; paying (or switching to pay-on-delivery) makes it disappear on
// the next poll.
type Notification struct {
	AlquilerID      string   `json:"alquilerId"`
	Tipo            string   `json:"tipo"`
	Monto           float64  `json:"monto"`
	MontoFormateado string   `json:"montoFormateado"`
	Porcentaje      int      `json:"porcentaje"`
	Total           float64  `json:"total"`
	Productos       []string `json:"productos"`
	FechaInicio     string   `json:"fechaInicio"`
	FechaFin        string   `json:"fechaFin"`
	Estado          string   `json:"estadoAlquiler"`
}

// Payment is the durable record of a processed installment.
type Payment struct {
	ID          string  `json:"id"`
	AlquilerID  string  `json:"alquilerId"`
	UsuarioID   string  `json:"usuarioId"`
	Transaccion string  `json:"numeroTransaccion"`
	Tipo        string  `json:"tipo"`
	Monto       float64 `json:"monto"`
	MetodoPago  string  `json:"metodoPago"`
	Ultimos4    string  `json:"ultimosDigitos"`
	Fecha       string  `json:"fechaPago"`
}
