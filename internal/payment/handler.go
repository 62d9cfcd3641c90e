package payment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/card"
	"github.com/furent/furniture-rental-backend/internal/rental"
	"github.com/furent/furniture-rental-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/pagos/notificaciones", h.notifications)
	app.Get("/pagos/notificaciones-count", h.notificationCount)
	app.Get("/pagos/historial", h.history)
	app.Post("/pagos/procesar-pago-parcial", h.payNewCard(PhasePartial))
	app.Post("/pagos/procesar-pago-final", h.payNewCard(PhaseFinal))
	app.Post("/pagos/procesar-pago-parcial-tarjeta-guardada", h.paySavedCard(PhasePartial))
	app.Post("/pagos/procesar-pago-final-tarjeta-guardada", h.paySavedCard(PhaseFinal))
}

func (h *Handler) notifications(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	notifications, err := h.service.Notifications(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "notificaciones": notifications})
}

func (h *Handler) notificationCount(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	count, err := h.service.NotificationCount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "count": count})
}

func (h *Handler) history(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payments, err := h.service.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "pagos": payments})
}

func (h *Handler) payNewCard(tipo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := user.IDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
		}
		payload := new(NewCardRequest)
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		pago, err := h.service.ProcessNewCard(userID, tipo, *payload)
		if err != nil {
			return h.paymentError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Pago procesado correctamente", "pago": pago})
	}
}

type savedCardRequest struct {
	AlquilerID string `json:"alquilerId" form:"alquilerId"`
	TarjetaID  string `json:"tarjetaId" form:"tarjetaId"`
}

func (h *Handler) paySavedCard(tipo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := user.IDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
		}
		payload := new(savedCardRequest)
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		pago, err := h.service.ProcessSavedCard(userID, tipo, payload.AlquilerID, payload.TarjetaID)
		if err != nil {
			return h.paymentError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Pago procesado correctamente", "pago": pago})
	}
}

func (h *Handler) paymentError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrBadNumber, ErrBadCVV, ErrNoPending, rental.ErrWrongState, rental.ErrPaymentNotPending:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	case ErrDeclined:
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"success": false, "message": err.Error()})
	case rental.ErrNotFound, card.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case rental.ErrNotOwner:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
}
