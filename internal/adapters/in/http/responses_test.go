package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: errs.NewObjectNotFoundError("order", "4211"), status: http.StatusNotFound},
		{name: "not authorized", err: order.ErrNotAuthorized, status: http.StatusForbidden},
		{name: "invalid state", err: order.ErrInvalidState, status: http.StatusConflict},
		{name: "wrapped invalid state", err: fmt.Errorf("update: %w", order.ErrInvalidState), status: http.StatusConflict},
		{name: "not accepting orders", err: producer.ErrNotAcceptingOrders, status: http.StatusConflict},
		{name: "revision limit", err: order.ErrRevisionLimitExceeded, status: http.StatusUnprocessableEntity},
		{name: "no final files", err: order.ErrNoFinalFiles, status: http.StatusUnprocessableEntity},
		{name: "file rejected", err: services.ErrFileRejected, status: http.StatusUnprocessableEntity},
		{name: "invalid value", err: errs.NewValueIsInvalidError("orderId"), status: http.StatusBadRequest},
		{name: "required value", err: errs.NewValueIsRequiredError("file"), status: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("db on fire"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, fail(c, tt.err))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestFileKindParam(t *testing.T) {
	tests := []struct {
		raw  string
		kind services.FileKind
	}{
		{raw: "", kind: services.FinalFile},
		{raw: "final", kind: services.FinalFile},
		{raw: "reference", kind: services.ReferenceFile},
		{raw: "demo", kind: services.DemoFile},
	}

	e := echo.New()
	for _, tt := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?kind="+tt.raw, nil), httptest.NewRecorder())
		kind, err := fileKindParam(c)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, kind)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?kind=stems", nil), httptest.NewRecorder())
	_, err := fileKindParam(c)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestFail_UnknownErrorsAreNotLeaked(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, fail(c, errors.New("pq: connection refused host=db.internal")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db.internal")
	assert.Contains(t, rec.Body.String(), "internal server error")
}
