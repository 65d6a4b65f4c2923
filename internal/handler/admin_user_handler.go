package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/usecase"
)

// AdminUserHandler serves /users. The group must already enforce the admin role,
// the usecase checks it again.
type AdminUserHandler struct {
	uc *usecase.UserUsecase
}

func NewAdminUserHandler(uc *usecase.UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/role", h.changeRole)
	g.PATCH("/:id/activate", h.activate)
	g.PATCH("/:id/deactivate", h.deactivate)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *AdminUserHandler) list(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryIntPtr(c, "limit")
	if err != nil {
		return err
	}

	out, err := h.uc.ListUsers(c.Request().Context(), actor, usecase.ListUsersInput{
		Skip:   skip,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.AdminGetUser(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var patch usecase.UserPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	user, err := h.uc.AdminUpdateUser(c.Request().Context(), actor, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.AdminDeleteUser(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// changeRole takes the role from the body or from ?new_role=.
func (h *AdminUserHandler) changeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	role := c.QueryParam("new_role")
	if role == "" {
		var req changeRoleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		role = req.Role
	}

	user, err := h.uc.ChangeRole(c.Request().Context(), actor, id, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) activate(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.Activate(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminUserHandler) deactivate(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.Deactivate(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
