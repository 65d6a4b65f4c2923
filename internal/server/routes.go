package server

import (
	"github.com/labstack/echo/v4"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/storefront/backend/docs"
	"github.com/storefront/backend/internal/domain/model"
	"github.com/storefront/backend/internal/handler"
	"github.com/storefront/backend/internal/middleware"
)

// Guard is what the route groups need from the access guard.
type Guard interface {
	middleware.Authenticator
	middleware.RoleChecker
}

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	AdminUser    *handler.AdminUserHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
}

// RegisterRoutes mounts public, bearer and admin routes. Admin user routes live
// under /users so they never shadow /me.
func RegisterRoutes(e *echo.Echo, h Handlers, guard Guard) {
	e.GET("/swagger/*", echo.WrapHandler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)))

	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)

	me := e.Group("/me", middleware.BearerAuth(guard))
	h.User.RegisterRoutes(me)

	users := e.Group("/users", middleware.BearerAuth(guard), middleware.RequireRole(guard, model.RoleAdmin))
	h.AdminUser.RegisterRoutes(users)

	admin := e.Group("/admin", middleware.BearerAuth(guard), middleware.RequireRole(guard, model.RoleAdmin))
	h.AdminProduct.RegisterRoutes(admin)
}
