// Package auth is the boundary to the authentication collaborator.
// The console never manages credentials; it only needs to know that a
// request carries a valid session and which operator email it belongs
// to, for display and personalization.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityKey = "session_email"

// Claims is the session token payload issued by the auth collaborator.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Config holds session verification settings.
type Config struct {
	// Secret is the HMAC key shared with the auth collaborator.
	Secret []byte
}

// Middleware rejects requests without a valid Bearer session token and
// stores the session email in the echo context.
func Middleware(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return cfg.Secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set(identityKey, claims.Email)
			return next(c)
		}
	}
}

// DevMiddleware injects a synthetic operator identity so the console
// can run without the auth collaborator in development.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, "operator@dev.local")
			return next(c)
		}
	}
}

// CurrentEmail returns the session identity, if any.
func CurrentEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(identityKey).(string)
	return email, ok && email != ""
}

// SessionHandler serves the current operator identity for display.
func SessionHandler(c echo.Context) error {
	email, ok := CurrentEmail(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(http.StatusOK, map[string]string{"email": email})
}

// IssueToken mints a session token. Used by tests and local tooling;
// production tokens come from the auth collaborator.
func IssueToken(secret []byte, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
