package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const defaultUserId = "default"

// IdentityMiddleware resolves the requesting user. A valid bearer token
// with a user_id claim identifies the user; everything else falls back
// to the shared default identity. Requests are never rejected here.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	ctx.Locals("user_id", resolveUserId(ctx.Get("Authorization")))
	return ctx.Next()
}

func resolveUserId(authHeader string) string {
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return defaultUserId
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return defaultUserId
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return defaultUserId
	}

	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return defaultUserId
	}
	return userId
}

// UserIdFromCtx reads the identity set by IdentityMiddleware.
func UserIdFromCtx(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("user_id").(string); ok && id != "" {
		return id
	}
	return defaultUserId
}
