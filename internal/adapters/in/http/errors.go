package http

import (
	"errors"
	"fmt"
	"net/http"

	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/generated/servers"
	"parcelquote/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to an HTTP status and a client-safe message.
// Collaborator failures are checked first because their causes may also match
// the validation sentinels.
func statusFor(err error) (int, string) {
	var svcErr *errs.ExternalServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case errs.KindRejected:
			if svcErr.Service == ports.PaymentGatewayService {
				return http.StatusPaymentRequired, "payment was declined"
			}
			return http.StatusBadGateway, fmt.Sprintf("%s rejected the request", svcErr.Service)
		case errs.KindTimeout:
			return http.StatusGatewayTimeout, fmt.Sprintf("%s timed out", svcErr.Service)
		default:
			return http.StatusServiceUnavailable, fmt.Sprintf("%s is unavailable", svcErr.Service)
		}
	}

	switch {
	case errors.Is(err, services.ErrOutOfServiceArea):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrAccountAlreadyExists),
		errors.Is(err, commands.ErrIdempotencyKeyInUse),
		errors.Is(err, ports.ErrOrderAlreadyExists),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, err.Error()
	case errors.Is(err, commands.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// ErrorHandler renders errors that escape the handlers (unknown routes, panics
// caught by the recover middleware) in the API's error shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	status, message := statusFor(err)
	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, servers.Error{Code: status, Message: message})
}
