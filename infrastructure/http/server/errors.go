package server

import (
	"hive-signal/errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	internalErrorMessage = "internal server error"
	invalidBodyMessage   = "invalid request body"
)

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps an error kind to its status. Unclassified errors are logged
// and their text never leaves the process.
func (h *Handler) renderError(c echo.Context, err error) error {
	var validationErr *errors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, errors.ErrPersistence):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errors.ErrPersistence.Error()})
	case errors.Is(err, errors.ErrUnauthenticated), errors.Is(err, errors.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: unauthorizedMessage(err)})
	default:
		h.log.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
	}
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, errors.ErrInvalidCredentials) {
		return errors.ErrInvalidCredentials.Error()
	}
	return errors.ErrUnauthenticated.Error()
}
