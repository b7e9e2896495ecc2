package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CtxClaimsKey = "auth_claims"

// User identifica quem fez a requisição, para trilha de auditoria.
type User struct {
	ID   string
	Name string
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token não fornecido")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Formato do token deve ser 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		c.Locals(CtxClaimsKey, claims)
		return c.Next()
	}
}

// RequirePermission deixa passar só quem tem perm no token. Deve vir depois
// do JWTMiddleware.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário não autenticado")
		}
		if !claims.HasPermission(perm) {
			return fiber.NewError(fiber.StatusForbidden, "Acesso negado")
		}
		return c.Next()
	}
}

// CurrentUser devolve o usuário do token, ou um User vazio fora de rotas protegidas.
func CurrentUser(c *fiber.Ctx) User {
	claims, ok := c.Locals(CtxClaimsKey).(*Claims)
	if !ok {
		return User{}
	}
	return User{ID: claims.UserID, Name: claims.Name}
}
