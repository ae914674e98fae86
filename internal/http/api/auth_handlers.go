package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthHandler verifies the bearer token the hosted identity provider issued
// and resolves the caller id from its subject claim. Every handler behind it
// can rely on c.Locals("userID") being set.
func AuthHandler(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get the authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		// Extract the token from the header
		tokenStr := strings.TrimSpace(strings.Replace(authHeader, "Bearer", "", 1))

		// Parse the token
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		c.Locals("userID", sub)
		return c.Next()
	}
}

func CheckTokenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(StatusOk).JSON(Response{Message: "token ok"})
	}
}
