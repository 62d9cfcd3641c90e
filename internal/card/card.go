package card

import (
	"strings"
	"time"
)

// Card types recognized by the issuer prefix.
const (
	TypeVisa       = "VISA"
	TypeMastercard = "MASTERCARD"
	TypeAmex       = "AMEX"
	TypeUnknown    = "DESCONOCIDA"
)

// Card is the client-facing view of a stored card. The full number and CVV
// never leave the service; only the masked tail is serialized.
type Card struct {
	ID                string `json:"id"`
	NumeroEnmascarado string `json:"numeroEnmascarado"`
	Tipo              string `json:"tipoTarjeta"`
	NombreTitular     string `json:"nombreTitular"`
	MesExpiracion     int    `json:"mesExpiracion"`
	AnioExpiracion    int    `json:"anioExpiracion"`
	Alias             string `json:"alias,omitempty"`
	EsPredeterminada  bool   `json:"esPredeterminada"`
	EstaVencida       bool   `json:"estaVencida"`
	FechaCreacion     string `json:"fechaCreacion"`
}

// DetectType classifies by the leading digits: 4 is VISA, 5 MASTERCARD,
// 34/37 AMEX.
func DetectType(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return TypeVisa
	case strings.HasPrefix(number, "5"):
		return TypeMastercard
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return TypeAmex
	default:
		return TypeUnknown
	}
}

// Mask keeps only the last four digits visible.
func Mask(number string) string {
	if len(number) < 4 {
		return "**** **** **** ****"
	}
	return "**** **** **** " + number[len(number)-4:]
}

func lastFour(masked string) string {
	if len(masked) < 4 {
		return masked
	}
	return masked[len(masked)-4:]
}

// expired reports whether the card is past its expiration month.
func expired(mes, anio int, now time.Time) bool {
	if anio < now.Year() {
		return true
	}
	return anio == now.Year() && mes < int(now.Month())
}
