package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"appointment-sync/core/controller"
	"appointment-sync/core/errors"
	"appointment-sync/core/logger"
)

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: []byte(jwtSecret)}
}

// AuthMiddleware guards the admin/diagnostic surface with an HS256 bearer
// token. The booking API itself stays public.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "authorization header is required")
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return m.jwtSecret, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}

			return next(c)
		}
	}
}
