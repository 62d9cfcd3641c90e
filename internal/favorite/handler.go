package favorite

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/catalog"
	"github.com/furent/furniture-rental-backend/internal/user"
)

// Handler keeps favorite-specific HTTP routing isolated from the catalog
// handler.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/favoritos/listar", h.list)
	app.Get("/favoritos/list-ids", h.listIDs)
	app.Get("/favoritos/check/:productoId", h.check)
	app.Post("/favoritos/toggle", h.toggle)
}

type toggleRequest struct {
	ProductoID string `json:"productoId" form:"productoId"`
}

func (h *Handler) toggle(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(toggleRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	esFavorito, err := h.service.Toggle(userID, payload.ProductoID)
	if err != nil {
		switch err {
		case ErrMissingProduct:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case catalog.ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	message := "Eliminado de favoritos"
	if esFavorito {
		message = "Agregado a favoritos"
	}
	return c.JSON(fiber.Map{"success": true, "esFavorito": esFavorito, "message": message})
}

func (h *Handler) check(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	esFavorito, err := h.service.IsFavorite(userID, c.Params("productoId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "esFavorito": esFavorito})
}

func (h *Handler) listIDs(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	ids, err := h.service.ListIDs(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "favoritos": ids})
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	productos, err := h.service.ListProducts(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "productos": productos})
}
