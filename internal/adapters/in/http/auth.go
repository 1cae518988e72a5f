package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	callerContextKey = "caller"
	adminRole        = "admin"
)

// Caller is the authenticated identity taken from the bearer token.
type Caller struct {
	Email string
	Role  string
}

func (c Caller) IsAdmin() bool { return c.Role == adminRole }

// Claims is the token payload. Tokens are signed with HS256 by the identity
// provider; this service only verifies them.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate rejects requests without a valid bearer token and stores the
// Caller on the echo context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return writeErrorStatus(c, http.StatusUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				return writeErrorStatus(c, http.StatusUnauthorized, "invalid token")
			}
			if claims.Email == "" {
				return writeErrorStatus(c, http.StatusUnauthorized, "token has no email claim")
			}

			c.Set(callerContextKey, Caller{Email: claims.Email, Role: claims.Role})
			return next(c)
		}
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := callerFrom(c)
		if err != nil {
			return writeErrorStatus(c, http.StatusUnauthorized, err.Error())
		}
		if !caller.IsAdmin() {
			return writeErrorStatus(c, http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

func callerFrom(c echo.Context) (Caller, error) {
	caller, ok := c.Get(callerContextKey).(Caller)
	if !ok {
		return Caller{}, errors.New("request is not authenticated")
	}
	return caller, nil
}
