package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/middleware"
)

// ErrorResponse is the single error envelope of the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// NewErrorHandler renders every error returned by handlers and middleware.
// apperr kinds pick the status, echo errors keep theirs, anything else is a 500.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func errorBody(err error) (int, ErrorResponse) {
	if ae, ok := apperr.As(err); ok {
		return ae.Kind.Status(), ErrorResponse{Error: ae.Code, Message: ae.Message, Detail: ae.Detail}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, ErrorResponse{Error: echoErrorCode(he.Code), Message: msg}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: apperr.ErrInternal.Code, Message: apperr.ErrInternal.Message}
}

func echoErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperr.ErrValidation.Code
	case http.StatusUnauthorized:
		return apperr.ErrUnauthorized.Code
	case http.StatusForbidden:
		return apperr.ErrForbidden.Code
	case http.StatusNotFound:
		return apperr.ErrNotFound.Code
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return apperr.ErrTooManyAttempts.Code
	default:
		return apperr.ErrInternal.Code
	}
}

// bind decodes the JSON body, mapping decode failures to a validation error.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.ErrValidation.WithMessage("invalid request body").Wrap(err)
	}
	return nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.ErrValidation.WithMessage("invalid " + name)
	}
	return id, nil
}

// queryInt returns def when the parameter is absent.
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.ErrValidation.WithMessage("invalid " + name)
	}
	return n, nil
}

// queryIntPtr returns nil when the parameter is absent, so callers can tell it from 0.
func queryIntPtr(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperr.ErrValidation.WithMessage("invalid " + name)
	}
	return &n, nil
}

func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, apperr.ErrValidation.WithMessage("invalid " + name)
	}
	return &n, nil
}

func currentUser(c echo.Context) (*model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	return u, nil
}
