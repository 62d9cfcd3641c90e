package catalog

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/productos", h.listProducts)
	app.Get("/productos/:id", h.getProduct)
	app.Get("/categorias", h.listCategories)
}

// RegisterAdminRoutes mounts the catalog CRUD screens; callers group these
// under /admin behind the admin guard.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Post("/productos", h.createProduct)
	app.Put("/productos/:id", h.updateProduct)
	app.Delete("/productos/:id", h.deleteProduct)
	app.Post("/categorias", h.createCategory)
	app.Put("/categorias/:id", h.updateCategory)
	app.Delete("/categorias/:id", h.deleteCategory)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "productos": products})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Producto no encontrado"})
	}
	return c.JSON(fiber.Map{"success": true, "producto": p})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	created, err := h.service.CreateProduct(*payload)
	if err != nil {
		if err == ErrInvalidProduct {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "producto": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	updated, err := h.service.UpdateProduct(c.Params("id"), *payload)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Producto no encontrado"})
		case ErrInvalidProduct:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "producto": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		if err == ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Producto eliminado"})
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "categorias": categories})
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	created, err := h.service.CreateCategory(*payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "categoria": created})
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	updated, err := h.service.UpdateCategory(c.Params("id"), *payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "categoria": updated})
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		if err == ErrCategoryNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Categoría no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Categoría eliminada"})
}
