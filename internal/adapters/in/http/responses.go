package http

import (
	"errors"
	"net/http"

	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type responseBody struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newErrorBody(code int, message string) responseBody {
	return responseBody{OK: false, Error: &errorBody{Code: code, Message: message}}
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, responseBody{OK: true, Data: data})
}

// fail maps domain errors onto HTTP statuses. Unrecognized errors become 500s
// with a generic message so internals never leak to clients.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, newErrorBody(http.StatusNotFound, err.Error()))
	case errors.Is(err, order.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, newErrorBody(http.StatusForbidden, err.Error()))
	case errors.Is(err, order.ErrInvalidState),
		errors.Is(err, producer.ErrNotAcceptingOrders):
		return c.JSON(http.StatusConflict, newErrorBody(http.StatusConflict, err.Error()))
	case errors.Is(err, order.ErrRevisionLimitExceeded),
		errors.Is(err, order.ErrNoFinalFiles),
		errors.Is(err, services.ErrFileRejected):
		return c.JSON(http.StatusUnprocessableEntity, newErrorBody(http.StatusUnprocessableEntity, err.Error()))
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, newErrorBody(http.StatusBadRequest, err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError,
			newErrorBody(http.StatusInternalServerError, "internal server error"))
	}
}
