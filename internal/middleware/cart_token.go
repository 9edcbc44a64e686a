package middleware

import (
	"context"
	"net/http"

	"myShopCart/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CartChecker reports whether a cart with the given token exists.
type CartChecker interface {
	Exists(ctx context.Context, token string) (bool, error)
}

// CartTokenMiddleware rejects requests whose :cart_token does not name an existing cart.
func CartTokenMiddleware(carts CartChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Param("cart_token")
			if token == "" {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "Invalid cart token"})
			}

			ok, err := carts.Exists(c.Request().Context(), token)
			if err != nil {
				logger.Error("Failed to check cart token", "error", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
			}
			if !ok {
				return c.JSON(http.StatusNotFound, map[string]string{"message": "Invalid cart token"})
			}

			return next(c)
		}
	}
}
