package user

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service   *Service
	jwtSecret []byte
}

func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: []byte(jwtSecret)}
}

type credentialsRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

type registerRequest struct {
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	Password string `json:"password"`
	Telefono string `json:"telefono"`
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/usuarios/login", h.login)
	app.Post("/api/usuarios/registrar", h.register)
	app.Post("/api/administrador/login", h.adminLogin)
}

// RegisterAdminRoutes mounts the users screen; callers group these under
// /api/admin behind RequireAdmin.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	app.Get("/usuarios", h.listUsers)
	app.Put("/usuarios/:id", h.updateUser)
	app.Delete("/usuarios/:id", h.deleteUser)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(credentialsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	u, err := h.service.Authenticate(payload.Correo, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Correo o contraseña incorrectos"})
	}

	token, err := h.signToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "No se pudo generar el token"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"usuario": sanitize(u),
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	created, err := h.service.Register(User{
		Nombre:   payload.Nombre,
		Correo:   payload.Correo,
		Password: payload.Password,
		Telefono: payload.Telefono,
	})
	if err != nil {
		switch err {
		case ErrEmailExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "El correo ya está registrado"})
		case ErrInvalidCredentials:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Faltan campos obligatorios"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registro exitoso",
		"usuario": sanitize(created),
	})
}

func (h *Handler) adminLogin(c *fiber.Ctx) error {
	payload := new(credentialsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	u, err := h.service.AuthenticateAdmin(payload.Correo, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Acceso denegado"})
	}

	token, err := h.signToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "No se pudo generar el token"})
	}

	return c.JSON(fiber.Map{"success": true, "token": token, "usuario": sanitize(u)})
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	return c.JSON(fiber.Map{"success": true, "usuarios": out})
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload := new(User)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "usuario": sanitize(updated)})
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Usuario eliminado"})
}

func (h *Handler) signToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"correo":  u.Correo,
		"admin":   u.Rol == RoleAdmin,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// RequireAdmin guards the admin dashboard routes.
func RequireAdmin(c *fiber.Ctx) error {
	if !IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Acceso denegado"})
	}
	return c.Next()
}

func sanitize(u User) User {
	u.Password = ""
	return u
}
