package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
)

const ctxUserKey = "current_user" // *model.User

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// BearerAuth authenticates "Authorization: Bearer <token>" and stores the user on the context.
func BearerAuth(guard Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperr.ErrUnauthorized
			}

			user, err := guard.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(ctxUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by BearerAuth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ctxUserKey).(*model.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
