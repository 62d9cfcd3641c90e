package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/format"
	"github.com/furent/furniture-rental-backend/internal/user"
)

// Handler exposes the cart preview endpoints consumed by the storefront
// header badge and the slide-in preview.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/carrito/datos", h.getCart)
	app.Get("/carrito/cantidad", h.getCount)
	app.Post("/carrito/agregar", h.addItem)
	app.Post("/carrito/actualizar", h.updateItem)
	app.Post("/carrito/eliminar", h.removeItem)
	app.Post("/carrito/vaciar", h.clear)
}

type cartRequest struct {
	ProductoID   string `json:"productoId" form:"productoId"`
	Cantidad     int    `json:"cantidad" form:"cantidad"`
	DiasAlquiler int    `json:"diasAlquiler" form:"diasAlquiler"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	summary, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "items": summary.Items, "total": summary.Total, "totalFormateado": format.Currency(summary.Total)})
}

func (h *Handler) getCount(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	summary, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "cantidadItems": summary.CantidadItems})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.ProductoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "productoId requerido"})
	}
	if payload.Cantidad == 0 {
		payload.Cantidad = 1
	}
	if payload.DiasAlquiler == 0 {
		payload.DiasAlquiler = 1
	}

	summary, err := h.service.Add(userID, payload.ProductoID, payload.Cantidad, payload.DiasAlquiler)
	if err != nil {
		switch err {
		case ErrProductUnknown:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Producto no encontrado"})
		case ErrBadQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "items": summary.Items, "total": summary.Total, "totalFormateado": format.Currency(summary.Total), "cantidadItems": summary.CantidadItems})
}

// updateItem applies a quantity delta; the storefront uses it for the +/-
// steppers. Semantics match addItem with an existing line.
func (h *Handler) updateItem(c *fiber.Ctx) error {
	return h.addItem(c)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	summary, err := h.service.Remove(userID, payload.ProductoID)
	if err != nil {
		if err == ErrItemNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "items": summary.Items, "total": summary.Total, "totalFormateado": format.Currency(summary.Total)})
}

func (h *Handler) clear(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Carrito vaciado"})
}
