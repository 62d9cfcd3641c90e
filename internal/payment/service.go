package payment

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/furent/furniture-rental-backend/internal/format"
	"github.com/furent/furniture-rental-backend/internal/rental"
)

var (
	ErrBadNumber = errors.New("número de tarjeta inválido")
	ErrBadCVV    = errors.New("CVV inválido")
	ErrNoPending = errors.New("este alquiler no tiene pagos pendientes en esta fase")
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// CardVault is the slice of the saved-card service payments need: the full
// number never travels through HTTP for saved-card payments.
type CardVault interface {
	Reveal(userID, cardID string) (number, cvv string, err error)
}

type Service struct {
	repo    Repository
	rentals *rental.Service
	cards   CardVault
	gateway Gateway
}

func NewService(repo Repository, rentals *rental.Service, cards CardVault, gateway Gateway) *Service {
	return &Service{repo: repo, rentals: rentals, cards: cards, gateway: gateway}
}

// Notifications derives the user's pending installments from rental state.
// Nothing is stored: paying, or a status change, removes the entry on the
// next poll. Pay-on-delivery rentals never notify.
func (s *Service) Notifications(userID string) ([]Notification, error) {
	rentals, err := s.rentals.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0)
	for _, rent := range rentals {
		if rent.PagoContraEntrega {
			continue
		}
		switch {
		case rent.Estado == rental.StatusConfirmed && rent.EstadoPagoParcial == rental.PaymentPending:
			out = append(out, notification(rent, PhasePartial, rent.MontoPagoParcial))
		case rent.Estado == rental.StatusCompleted && rent.EstadoPagoFinal == rental.PaymentPending:
			out = append(out, notification(rent, PhaseFinal, rent.MontoSaldoPendiente))
		}
	}
	return out, nil
}

func notification(rent rental.Rental, tipo string, monto float64) Notification {
	productos := make([]string, 0, len(rent.Items))
	for _, item := range rent.Items {
		nombre := item.Nombre
		if item.Cantidad > 1 {
			nombre = fmt.Sprintf("%s (x%d)", item.Nombre, item.Cantidad)
		}
		productos = append(productos, nombre)
	}
	return Notification{
		AlquilerID:      rent.ID,
		Tipo:            tipo,
		Monto:           monto,
		MontoFormateado: format.Currency(monto),
		Porcentaje:      50,
		Total:           rent.Total,
		Productos:       productos,
		FechaInicio:     rent.FechaInicio,
		FechaFin:        rent.FechaFin,
		Estado:          rent.Estado,
	}
}

func (s *Service) NotificationCount(userID string) (int, error) {
	notifications, err := s.Notifications(userID)
	if err != nil {
		return 0, err
	}
	return len(notifications), nil
}

type NewCardRequest struct {
	AlquilerID string `json:"alquilerId" form:"alquilerId"`
	Numero     string `json:"numeroTarjeta" form:"numeroTarjeta"`
	Titular    string `json:"nombreTitular" form:"nombreTitular"`
	CVV        string `json:"cvv" form:"cvv"`
}

func (r NewCardRequest) validate() error {
	if len(r.Numero) < 13 || len(r.Numero) > 19 || !digitsOnly.MatchString(r.Numero) {
		return ErrBadNumber
	}
	if len(r.CVV) != 3 || !digitsOnly.MatchString(r.CVV) {
		return ErrBadCVV
	}
	return nil
}

// ProcessNewCard charges a card entered at payment time, without vaulting it.
func (s *Service) ProcessNewCard(userID, tipo string, req NewCardRequest) (Payment, error) {
	if err := req.validate(); err != nil {
		return Payment{}, err
	}
	return s.process(userID, req.AlquilerID, tipo, MethodNewCard, req.Numero, req.CVV, req.Titular)
}

// ProcessSavedCard charges a vaulted card identified by id.
func (s *Service) ProcessSavedCard(userID, tipo, alquilerID, tarjetaID string) (Payment, error) {
	numero, cvv, err := s.cards.Reveal(userID, tarjetaID)
	if err != nil {
		return Payment{}, err
	}
	return s.process(userID, alquilerID, tipo, MethodSavedCard, numero, cvv, "")
}

func (s *Service) process(userID, alquilerID, tipo, metodo, numero, cvv, titular string) (Payment, error) {
	rent, err := s.rentals.Get(alquilerID)
	if err != nil {
		return Payment{}, err
	}
	if rent.UsuarioID != userID {
		return Payment{}, rental.ErrNotOwner
	}

	var monto float64
	switch tipo {
	case PhasePartial:
		if rent.Estado != rental.StatusConfirmed || rent.EstadoPagoParcial != rental.PaymentPending {
			return Payment{}, ErrNoPending
		}
		monto = rent.MontoPagoParcial
	case PhaseFinal:
		if rent.Estado != rental.StatusCompleted || rent.EstadoPagoFinal != rental.PaymentPending {
			return Payment{}, ErrNoPending
		}
		monto = rent.MontoSaldoPendiente
	default:
		return Payment{}, fmt.Errorf("fase de pago desconocida: %s", tipo)
	}

	txn, err := s.gateway.Charge(ChargeRequest{Numero: numero, CVV: cvv, Titular: titular, Monto: monto})
	if err != nil {
		return Payment{}, err
	}

	if tipo == PhasePartial {
		_, err = s.rentals.MarkPartialPaid(alquilerID, userID)
	} else {
		_, err = s.rentals.MarkFinalPaid(alquilerID, userID)
	}
	if err != nil {
		return Payment{}, err
	}

	pago := Payment{
		ID:          uuid.NewString(),
		AlquilerID:  alquilerID,
		UsuarioID:   userID,
		Transaccion: txn,
		Tipo:        tipo,
		Monto:       monto,
		MetodoPago:  metodo,
		Ultimos4:    numero[len(numero)-4:],
		Fecha:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Save(pago); err != nil {
		return Payment{}, err
	}
	// receipt mail lives outside this service; a failed send never blocks
	log.Printf("pago %s registrado: alquiler %s, %s %.2f", pago.Transaccion, alquilerID, tipo, monto)
	return pago, nil
}

func (s *Service) History(userID string) ([]Payment, error) {
	return s.repo.ListByUser(userID)
}
