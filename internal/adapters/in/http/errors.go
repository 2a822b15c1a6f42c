package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request. Errors maps request
// fields to messages and is only present for validation failures.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

const (
	messageInvalid      = "The given data was invalid."
	messageUnauthorized = "This action is unauthorized."
	messageInternal     = "Internal server error"
)

// errorResponse maps a use case error to a status code and body.
func errorResponse(err error) (int, ErrorResponse) {
	var (
		httpErr  *echo.HTTPError
		conflict *errs.StateConflictError
		geo      *errs.GeoPreconditionError
		notFound *errs.ObjectNotFoundError
	)

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Message: msg}
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, ErrorResponse{Message: messageUnauthorized}
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrorResponse{Message: "No query results for " + notFound.ParamName}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Not found"}
	case errors.As(err, &geo):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: geo.Reason, Errors: errs.FieldErrors(err)}
	case errors.As(err, &conflict):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: conflict.Reason}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: messageInvalid, Errors: errs.FieldErrors(err)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: messageInternal}
	}
}

// NewErrorHandler renders errors returned by route handlers. Server errors are
// logged with the request path; everything else is the caller's fault.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}
