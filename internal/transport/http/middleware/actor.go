package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActorIDKey is the locals key holding the authenticated user id.
const ActorIDKey = "actor_id"

// HeaderUserID carries the principal id set by the auth gateway.
const HeaderUserID = "X-User-ID"

// Actor extracts the acting user id from the gateway header. Requests
// without a valid id are rejected before reaching any handler.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderUserID)
		if raw == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"code": "UNAUTHENTICATED", "message": "missing " + HeaderUserID + " header"},
			})
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"code": "UNAUTHENTICATED", "message": "malformed " + HeaderUserID + " header"},
			})
		}
		c.Locals(ActorIDKey, id)
		return c.Next()
	}
}

// ActorID returns the id stored by Actor.
func ActorID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(ActorIDKey).(uuid.UUID)
	return id
}
