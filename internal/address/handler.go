package address

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
	app.Get("/direcciones/api/listar", h.list)
	app.Post("/direcciones/crear", h.create)
	app.Post("/direcciones/editar/:id", h.update)
	app.Post("/direcciones/eliminar/:id", h.remove)
	app.Post("/direcciones/principal/:id", h.setPrincipal)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	addresses, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "direcciones": addresses})
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(SaveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	addr, err := h.service.Create(userID, *payload)
	if err != nil {
		if err == ErrMissingFields {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Dirección guardada", "direccion": addr})
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(SaveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	addr, err := h.service.Update(userID, c.Params("id"), *payload)
	if err != nil {
		switch err {
		case ErrMissingFields:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "Dirección actualizada", "direccion": addr})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	if err := h.service.Delete(userID, c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Dirección eliminada"})
}

func (h *Handler) setPrincipal(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	if err := h.service.SetPrincipal(userID, c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Dirección principal actualizada"})
}
