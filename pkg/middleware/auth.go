package middleware

import (
	"os"
	"strings"

	"clubhouse/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityLocal = "identity"

// RequireAuth gates write endpoints. The external identity provider issues
// HS256 bearer tokens with OIDC-style claims (sub, name, nickname, email);
// unauthenticated requests are rejected before any store access.
func RequireAuth(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(401).JSON(fiber.Map{"error": "Login required"})
	}

	tokenStr := auth[7:]
	secret := jwtSecret()

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims := *token.Claims.(*jwt.MapClaims)
	c.Locals(identityLocal, models.IdentityFromClaims(map[string]interface{}(claims)))

	return c.Next()
}

// IdentityFromCtx returns the identity stored by RequireAuth. The zero
// Identity is returned on unauthenticated requests.
func IdentityFromCtx(c *fiber.Ctx) models.Identity {
	ident, _ := c.Locals(identityLocal).(models.Identity)
	return ident
}

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-key-change-in-production"
	}
	return secret
}
