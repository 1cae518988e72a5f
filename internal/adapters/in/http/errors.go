package http

import (
	"errors"
	"net/http"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps a use case error to an HTTP status. The first match wins, so
// specific errors are listed before the generic ones they wrap.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrPaymentNotCompleted):
		return http.StatusPaymentRequired
	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrParcelNotFound),
		errors.Is(err, commands.ErrRiderNotFound),
		errors.Is(err, queries.ErrParcelNotFound),
		errors.Is(err, ports.ErrCheckoutSessionNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, rider.ErrRiderUnavailable),
		errors.Is(err, rider.ErrRiderBusy),
		errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, parcel.ErrAlreadyPaid),
		errors.Is(err, parcel.ErrRiderMismatch):
		return http.StatusConflict
	case errors.Is(err, ports.ErrGatewayUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}
	return writeErrorStatus(c, status, message)
}

func writeErrorStatus(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}
