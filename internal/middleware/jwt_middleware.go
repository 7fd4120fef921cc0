package middleware

import (
	"log"
	"strings"

	"dealspot/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by the guards below.
const (
	UserIDKey     = "user_id"
	MerchantIDKey = "merchant_id"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer JWT and
// stores the authenticated user id in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, ok := claims[UserIDKey].(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// MerchantRequired resolves the authenticated user's merchant once and stores
// it in the request context. Runs after AuthRequired. Users without a
// merchant are rejected here, so handlers never see an unscoped request.
func MerchantRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(UserIDKey).(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		merchantID, err := authService.ResolveMerchant(userID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "merchant not found for user",
			})
		}

		c.Locals(MerchantIDKey, merchantID)
		return c.Next()
	}
}
