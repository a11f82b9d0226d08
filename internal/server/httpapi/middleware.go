package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/server/auth"
)

// userIDKey is the echo context key the middleware stores the caller under.
const userIDKey = "userID"

// AuthMiddleware validates the bearer token and stores the authenticated
// user id on the request context. Requests without a valid token get 401.
func AuthMiddleware(secretKey []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(common.AuthHeaderName)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// currentUser returns the authenticated user id set by AuthMiddleware.
func currentUser(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
