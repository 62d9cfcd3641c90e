package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "USUARIO"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Password  string `json:"password,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Rol       string `json:"rol"`
	CreatedAt string `json:"fechaRegistro,omitempty"`
}

// IDFromCtx extracts the authenticated user id from the jwt middleware token.
func IDFromCtx(c *fiber.Ctx) (string, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}
	if raw, ok := claims["user_id"]; ok {
		if id, ok := raw.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", fiber.ErrUnauthorized
}

// IsAdminFromCtx reports whether the token carries the admin claim.
func IsAdminFromCtx(c *fiber.Ctx) bool {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return false
	}
	admin, _ := claims["admin"].(bool)
	return admin
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
