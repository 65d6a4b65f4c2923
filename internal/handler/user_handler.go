package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/usecase"
)

// UserHandler serves the caller's own profile under /me.
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes expects g to be the /me group behind BearerAuth.
func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.me)
	g.PUT("", h.updateMe)
	g.DELETE("", h.deleteMe)
}

func (h *UserHandler) me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) updateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var patch usecase.UserPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), user.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) deleteMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteSelf(c.Request().Context(), user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
