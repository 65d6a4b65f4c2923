package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/domain/model"
)

type RoleChecker interface {
	RequireRole(user *model.User, role model.Role) (*model.User, error)
}

// RequireRole must run after BearerAuth.
func RequireRole(guard RoleChecker, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := CurrentUser(c)
			if _, err := guard.RequireRole(user, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
