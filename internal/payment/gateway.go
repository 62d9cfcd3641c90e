package payment

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrDeclined = errors.New("pago rechazado por la pasarela")

type ChargeRequest struct {
	Numero string
	CVV    string
	Titular string
	Monto  float64
}

// Gateway authorizes a charge and returns a transaction number. The real
// processor lives outside this service.
type Gateway interface {
	Charge(req ChargeRequest) (string, error)
}

// Sandbox approves everything except the designated decline card, the usual
// trick for demo environments. Transaction numbers look like TXN-1A2B3C4D.
type Sandbox struct{}

func (Sandbox) Charge(req ChargeRequest) (string, error) {
	if strings.HasSuffix(req.Numero, "0002") {
		return "", ErrDeclined
	}
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8]), nil
}
