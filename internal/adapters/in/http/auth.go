package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trackorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ErrIntegrityTokenInvalid is returned when the bearer token is missing,
// malformed, expired, or carries no usable subject.
var ErrIntegrityTokenInvalid = errors.New("integrity token is invalid")

const actorContextKey = "trackorder.actor"

// AuthMiddleware validates the platform-issued bearer token and stores the
// authenticated user on the request context. The token subject is the platform
// user identifier.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromToken(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, ErrIntegrityTokenInvalid.Error()))
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromToken(header string, secret []byte) (kernel.UserID, error) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrIntegrityTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}

	actor, err := kernel.NewUserID(id)
	if err != nil {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}
	return actor, nil
}

// actor returns the authenticated user stored by AuthMiddleware.
func actor(c echo.Context) (kernel.UserID, error) {
	id, ok := c.Get(actorContextKey).(kernel.UserID)
	if !ok {
		return kernel.UserID{}, ErrIntegrityTokenInvalid
	}
	return id, nil
}
