package card

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/tarjetas/listar", h.list)
	app.Post("/tarjetas/guardar", h.save)
	app.Post("/tarjetas/establecer-predeterminada", h.setDefault)
	app.Post("/tarjetas/eliminar", h.remove)
	app.Post("/tarjetas/limpiar-duplicadas", h.cleanDuplicates)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	cards, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "tarjetas": cards})
}

func (h *Handler) save(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(SaveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	saved, err := h.service.Save(userID, *payload)
	if err != nil {
		switch err {
		case ErrBadNumber, ErrBadCVV, ErrBadExpiry, ErrMissingHolder:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case ErrLimitReached, ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Tarjeta guardada", "tarjeta": saved})
}

type cardRequest struct {
	TarjetaID string `json:"tarjetaId" form:"tarjetaId"`
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(cardRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := h.service.SetDefault(userID, payload.TarjetaID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Tarjeta predeterminada actualizada"})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(cardRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := h.service.Delete(userID, payload.TarjetaID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Tarjeta eliminada"})
}

func (h *Handler) cleanDuplicates(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	removed, err := h.service.CleanDuplicates(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Duplicadas eliminadas", "eliminadas": removed})
}
