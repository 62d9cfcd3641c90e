package rental

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/furent/furniture-rental-backend/internal/cart"
)

var (
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrBadDates          = errors.New("fechas de alquiler inválidas")
	ErrBadTransition     = errors.New("transición de estado no permitida")
	ErrNotOwner          = errors.New("no tienes permiso sobre este alquiler")
	ErrPaymentNotPending = errors.New("el pago ya fue realizado")
	ErrWrongState        = errors.New("estado del alquiler no admite esta operación")
)

type Service struct {
	repo  Repository
	carts *cart.Service
}

func NewService(repo Repository, carts *cart.Service) *Service {
	return &Service{repo: repo, carts: carts}
}

type CheckoutRequest struct {
	FechaInicio       string `json:"fechaInicio" form:"fechaInicio"`
	FechaFin          string `json:"fechaFin" form:"fechaFin"`
	DireccionEntrega  string `json:"direccionEntrega" form:"direccionEntrega"`
	Notas             string `json:"notasAdicionales" form:"notasAdicionales"`
	PagoContraEntrega bool   `json:"pagoContraEntrega" form:"pagoContraEntrega"`
}

// Checkout turns the user's current cart into a pending rental and empties
// the cart. Totals come from the cart lines, never from the client.
func (s *Service) Checkout(userID, userName string, req CheckoutRequest) (Rental, error) {
	summary, err := s.carts.Get(userID)
	if err != nil {
		return Rental{}, err
	}
	if len(summary.Items) == 0 {
		return Rental{}, ErrEmptyCart
	}

	inicio, err := time.Parse("2006-01-02", req.FechaInicio)
	if err != nil {
		return Rental{}, ErrBadDates
	}
	fin, err := time.Parse("2006-01-02", req.FechaFin)
	if err != nil || !fin.After(inicio) {
		return Rental{}, ErrBadDates
	}
	if req.DireccionEntrega == "" {
		return Rental{}, fmt.Errorf("dirección de entrega requerida")
	}

	rent := Rental{
		ID:                uuid.NewString(),
		UsuarioID:         userID,
		UsuarioNombre:     userName,
		Items:             summary.Items,
		Estado:            StatusPending,
		FechaAlquiler:     time.Now().UTC().Format(time.RFC3339),
		FechaInicio:       req.FechaInicio,
		FechaFin:          req.FechaFin,
		DireccionEntrega:  req.DireccionEntrega,
		Notas:             req.Notas,
		EstadoPagoParcial: PaymentPending,
		EstadoPagoFinal:   PaymentPending,
		PagoContraEntrega: req.PagoContraEntrega,
	}
	rent.RecalcTotals()

	if err := s.repo.Save(rent); err != nil {
		return Rental{}, err
	}
	if err := s.carts.Clear(userID); err != nil {
		return Rental{}, err
	}
	return rent, nil
}

func (s *Service) ListByUser(userID string) ([]Rental, error) {
	rentals, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		rentals[i].RecalcTotals()
	}
	return rentals, nil
}

func (s *Service) List() ([]Rental, error) {
	rentals, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		rentals[i].RecalcTotals()
	}
	return rentals, nil
}

func (s *Service) Get(id string) (Rental, error) {
	rent, err := s.repo.Get(id)
	if err != nil {
		return Rental{}, err
	}
	rent.RecalcTotals()
	return rent, nil
}

func (s *Service) UpdateStatus(id, estado string) (Rental, error) {
	rent, err := s.repo.Get(id)
	if err != nil {
		return Rental{}, err
	}
	if !CanTransition(rent.Estado, estado) {
		return Rental{}, ErrBadTransition
	}
	rent.Estado = estado
	if err := s.repo.Save(rent); err != nil {
		return Rental{}, err
	}
	return rent, nil
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// MarkPartialPaid flips the first installment. The rental must be CONFIRMADO
// with the partial payment still pending; only the owner may pay.
func (s *Service) MarkPartialPaid(id, userID string) (Rental, error) {
	rent, err := s.repo.Get(id)
	if err != nil {
		return Rental{}, err
	}
	if rent.UsuarioID != userID {
		return Rental{}, ErrNotOwner
	}
	if rent.Estado != StatusConfirmed {
		return Rental{}, ErrWrongState
	}
	if rent.EstadoPagoParcial != PaymentPending {
		return Rental{}, ErrPaymentNotPending
	}
	rent.EstadoPagoParcial = PaymentPaid
	rent.FechaPagoParcial = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Save(rent); err != nil {
		return Rental{}, err
	}
	return rent, nil
}

// MarkFinalPaid flips the closing installment on a COMPLETADO rental.
func (s *Service) MarkFinalPaid(id, userID string) (Rental, error) {
	rent, err := s.repo.Get(id)
	if err != nil {
		return Rental{}, err
	}
	if rent.UsuarioID != userID {
		return Rental{}, ErrNotOwner
	}
	if rent.Estado != StatusCompleted {
		return Rental{}, ErrWrongState
	}
	if rent.EstadoPagoFinal != PaymentPending {
		return Rental{}, ErrPaymentNotPending
	}
	rent.EstadoPagoFinal = PaymentPaid
	rent.FechaPagoFinal = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Save(rent); err != nil {
		return Rental{}, err
	}
	return rent, nil
}
