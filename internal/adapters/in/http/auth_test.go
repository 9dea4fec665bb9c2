package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, subject string, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, authorization string) (*httptest.ResponseRecorder, kernel.UserID, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured kernel.UserID
	var reached bool
	handler := AuthMiddleware(testSecret)(func(c echo.Context) error {
		reached = true
		captured, _ = actor(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, captured, reached
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rec, actorID, reached := runMiddleware(t, "Bearer "+signedToken(t, "42", testSecret))

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), actorID.Int64())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		authorization func(t *testing.T) string
	}{
		{
			name:          "missing header",
			authorization: func(t *testing.T) string { return "" },
		},
		{
			name:          "not a bearer token",
			authorization: func(t *testing.T) string { return "Basic abc" },
		},
		{
			name:          "garbage token",
			authorization: func(t *testing.T) string { return "Bearer not.a.jwt" },
		},
		{
			name: "wrong secret",
			authorization: func(t *testing.T) string {
				return "Bearer " + signedToken(t, "42", []byte("other-secret"))
			},
		},
		{
			name: "non-numeric subject",
			authorization: func(t *testing.T) string {
				return "Bearer " + signedToken(t, "admin", testSecret)
			},
		},
		{
			name: "zero subject",
			authorization: func(t *testing.T) string {
				return "Bearer " + signedToken(t, "0", testSecret)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, reached := runMiddleware(t, tt.authorization(t))

			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
