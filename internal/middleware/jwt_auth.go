package middleware

import (
	"errors"
	"net/http"

	"github.com/anonto42/blogspace/backend/internal/token"
	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo context key under which the authenticated user's
// id (ObjectID hex) is stored.
const ContextUserID = "userID"

// JWTAuthMiddleware gates protected routes behind a valid identity token.
// The web client sends the raw token in the Authorization header, without a
// "Bearer " prefix. The middleware never touches the database: token validity
// is independent of user existence, and each downstream handler looks up the
// full user record itself when it needs one.
func JWTAuthMiddleware(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("Authorization")
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextUserID, userID)

			return next(c)
		}
	}
}
