package notify

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	notifier *Notifier
}

func NewHandler(notifier *Notifier) *Handler {
	return &Handler{notifier: notifier}
}

// RegisterProtectedRoutes mounts the badge stream. The jwt middleware must
// run first so the upgrade request carries the token claims.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Use("/ws/notificaciones", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notificaciones", websocket.New(h.stream))
}

func identity(conn *websocket.Conn) (userID string, admin bool, ok bool) {
	tok, okTok := conn.Locals("user").(*jwt.Token)
	if !okTok {
		return "", false, false
	}
	claims, okClaims := tok.Claims.(jwt.MapClaims)
	if !okClaims {
		return "", false, false
	}
	userID, _ = claims["user_id"].(string)
	admin, _ = claims["admin"].(bool)
	return userID, admin, userID != ""
}

func (h *Handler) stream(conn *websocket.Conn) {
	defer conn.Close()

	userID, admin, ok := identity(conn)
	if !ok {
		conn.WriteJSON(fiber.Map{"success": false, "message": "Debes iniciar sesión"})
		return
	}

	updates, cancel := h.notifier.Subscribe(userID, admin)
	defer cancel()

	// drain the client side so closes are noticed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, open := <-updates:
			if !open {
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
