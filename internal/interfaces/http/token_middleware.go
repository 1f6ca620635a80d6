package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/jhoicas/toa-ordenes-api/internal/application/dto"
)

// TokenMiddleware protege los endpoints de ingesta externa con un token
// estático en el header "Token". La comparación es de tiempo constante.
func TokenMiddleware(apiToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiToken == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TOKEN_NOT_CONFIGURED", Message: "API_TOKEN no configurado"})
		}
		got := c.Get("Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
		}
		return c.Next()
	}
}

// BasicAuthMiddleware protege los endpoints de lectura (PowerBI) con Basic
// Auth de credenciales fijas, vía el middleware basicauth de Fiber. El
// handler de rechazo responde JSON para que el cliente BI vea el motivo.
func BasicAuthMiddleware(user, password string) fiber.Handler {
	if user == "" || password == "" {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BASIC_AUTH_NOT_CONFIGURED", Message: "credenciales Basic Auth no configuradas"})
		}
	}
	return basicauth.New(basicauth.Config{
		Users: map[string]string{user: password},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="powerbi"`)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		},
	})
}
