package rental

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/user"
)

// UserDirectory resolves renter names for order listings.
type UserDirectory interface {
	GetByID(id string) (user.User, error)
}

type Handler struct {
	service *Service
	users   UserDirectory
}

func NewHandler(service *Service, users UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/alquileres/crear", h.checkout)
	app.Get("/alquileres/mis-alquileres", h.listMine)
	app.Get("/alquileres/:id", h.get)
}

func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/alquileres", h.listAll)
	app.Put("/alquileres/:id/estado", h.updateStatus)
	app.Delete("/alquileres/:id", h.remove)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(CheckoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	name := ""
	if u, err := h.users.GetByID(userID); err == nil {
		name = u.Nombre
	}

	rent, err := h.service.Checkout(userID, name, *payload)
	if err != nil {
		switch err {
		case ErrEmptyCart, ErrBadDates:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Alquiler registrado", "alquiler": rent})
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	rentals, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "alquileres": rentals})
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	rent, err := h.service.Get(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if rent.UsuarioID != userID && !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": ErrNotOwner.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "alquiler": rent})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	rentals, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "alquileres": rentals})
}

type statusRequest struct {
	Estado string `json:"estado" form:"estado"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	rent, err := h.service.UpdateStatus(c.Params("id"), payload.Estado)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		case ErrBadTransition:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "Estado actualizado", "alquiler": rent})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Alquiler eliminado"})
}
