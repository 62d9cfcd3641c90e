package review

import (
	"github.com/gofiber/fiber/v2"

	"github.com/furent/furniture-rental-backend/internal/user"
)

// UserDirectory resolves reviewer names for display.
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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/resenas/producto/:id", h.listByProduct)
	app.Get("/resenas/estadisticas/:id", h.stats)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/resenas/crear", h.create)
	app.Post("/resenas/crear-multiple", h.createGeneral)
	app.Post("/resenas/crear-individuales", h.createIndividual)
	app.Get("/resenas/mis-resenas", h.listMine)
	app.Get("/resenas/productos-resenados/:alquilerId", h.reviewedProducts)
}

// RegisterAdminRoutes mounts the moderation panel; callers group these under
// /resenas/admin behind the admin guard.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/pendientes", h.listPending)
	app.Get("/pendientes/count", h.pendingCount)
	app.Post("/aprobar/:id", h.approve)
	app.Post("/rechazar/:id", h.reject)
	app.Post("/responder/:id", h.reply)
	app.Post("/aprobar-todas", h.approveAll)
	app.Post("/rechazar-todas", h.rejectAll)
}

func (h *Handler) listByProduct(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "resenas": reviews})
}

func (h *Handler) stats(c *fiber.Ctx) error {
	stats, err := h.service.StatsByProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "estadisticas": stats})
}

func (h *Handler) reviewerName(c *fiber.Ctx, userID string) string {
	if u, err := h.users.GetByID(userID); err == nil {
		return u.Nombre
	}
	return ""
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(CreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	rev, err := h.service.Create(userID, h.reviewerName(c, userID), *payload)
	if err != nil {
		switch err {
		case ErrBadRating, ErrShortComment, ErrMissingProduct, ErrMissingRental:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case ErrAlreadyReviewed:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Reseña enviada para moderación", "resena": rev})
}

type generalRequest struct {
	AlquilerID   string       `json:"alquilerId" form:"alquilerId"`
	Productos    []ProductRef `json:"productos"`
	Calificacion int          `json:"calificacion" form:"calificacion"`
	Comentario   string       `json:"comentario" form:"comentario"`
}

func (h *Handler) createGeneral(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(generalRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	result, err := h.service.CreateGeneral(userID, h.reviewerName(c, userID), payload.AlquilerID, payload.Productos, payload.Calificacion, payload.Comentario)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Reseñas enviadas", "resultado": result})
}

type individualRequest struct {
	AlquilerID string            `json:"alquilerId" form:"alquilerId"`
	Resenas    []IndividualEntry `json:"resenas"`
}

func (h *Handler) createIndividual(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	payload := new(individualRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	result, err := h.service.CreateIndividual(userID, h.reviewerName(c, userID), payload.AlquilerID, payload.Resenas)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Reseñas enviadas", "resultado": result})
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	reviews, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "resenas": reviews})
}

func (h *Handler) reviewedProducts(c *fiber.Ctx) error {
	userID, err := user.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
	}
	ids, err := h.service.ReviewedProducts(c.Params("alquilerId"), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "productosResenados": ids})
}

func (h *Handler) listPending(c *fiber.Ctx) error {
	pending, err := h.service.ListPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "resenas": pending})
}

func (h *Handler) pendingCount(c *fiber.Ctx) error {
	count, err := h.service.PendingCount()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "count": count})
}

func (h *Handler) moderateOne(c *fiber.Ctx, fn func(string) (Review, error), message string) error {
	rev, err := fn(c.Params("id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		case ErrNotPending:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "resena": rev})
}

func (h *Handler) approve(c *fiber.Ctx) error {
	return h.moderateOne(c, h.service.Approve, "Reseña aprobada")
}

func (h *Handler) reject(c *fiber.Ctx) error {
	return h.moderateOne(c, h.service.Reject, "Reseña rechazada")
}

type replyRequest struct {
	Respuesta string `json:"respuesta" form:"respuesta"`
}

func (h *Handler) reply(c *fiber.Ctx) error {
	payload := new(replyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.Respuesta == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "respuesta requerida"})
	}
	rev, err := h.service.Reply(c.Params("id"), payload.Respuesta)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Respuesta publicada", "resena": rev})
}

func (h *Handler) approveAll(c *fiber.Ctx) error {
	result, err := h.service.ApproveAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Moderación masiva completada", "resultado": result})
}

func (h *Handler) rejectAll(c *fiber.Ctx) error {
	result, err := h.service.RejectAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Moderación masiva completada", "resultado": result})
}
