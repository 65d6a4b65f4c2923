package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/infra/idgen"
)

const ctxRequestIDKey = "request_id"

// RequestID keeps an incoming X-Request-ID or assigns a new KSUID, and echoes it back.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" || len(id) > 64 {
				id = idgen.NewKSUID()
			}
			c.Set(ctxRequestIDKey, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func GetRequestID(c echo.Context) string {
	id, _ := c.Get(ctxRequestIDKey).(string)
	return id
}
