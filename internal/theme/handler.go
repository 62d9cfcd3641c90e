package theme

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
	app.Get("/api/usuarios/:id/tema", h.get)
	app.Put("/api/usuarios/:id/tema", h.set)
}

// authorize lets a user manage only their own theme; admins may manage any.
func authorize(c *fiber.Ctx) (string, bool) {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return "", false
	}
	target := c.Params("id")
	if target != userID && !user.IsAdminFromCtx(c) {
		return "", false
	}
	return target, true
}

func (h *Handler) get(c *fiber.Ctx) error {
	target, ok := authorize(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	pref, err := h.service.Get(target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "tema": pref})
}

type themeRequest struct {
	Tema string `json:"tema" form:"tema"`
}

func (h *Handler) set(c *fiber.Ctx) error {
	target, ok := authorize(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(themeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err := h.service.Set(target, payload.Tema); err != nil {
		if err == ErrUnknownTheme {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "tema": payload.Tema})
}
