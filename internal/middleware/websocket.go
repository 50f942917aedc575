package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to the WebSocket endpoint are valid
// upgrade attempts and assigns the connection its identity. The id is opaque,
// unique for the connection's lifetime, and doubles as the player id in all
// room broadcasts.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Store the id in locals so it survives the upgrade; the connection
		// context is different from the upgrade context.
		c.Locals("connID", uuid.New().String())

		return c.Next()
	}
}
