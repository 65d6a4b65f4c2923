package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/usecase"
)

type ProductCreateRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	Stock       int64     `json:"stock"`
	IsActive    *bool     `json:"is_active"`
	CategoryID  uuid.UUID `json:"category_id"`
}

type ProductUpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *int64     `json:"price"`
	ImageURL    *string    `json:"image_url"`
	Stock       *int64     `json:"stock"`
	IsActive    *bool      `json:"is_active"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type InventoryUpdateRequest struct {
	Stock  *int64 `json:"stock"`
	Reason string `json:"reason"`
}

type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// AdminProductHandler groups /admin/products, /admin/inventory, /admin/categories and /admin/audit-logs.
type AdminProductHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
	history    *usecase.InventoryHistory
	auditLogs  *usecase.AuditLogUsecase
}

func NewAdminProductHandler(
	products *usecase.ProductUsecase,
	categories *usecase.CategoryUsecase,
	history *usecase.InventoryHistory,
	auditLogs *usecase.AuditLogUsecase,
) *AdminProductHandler {
	return &AdminProductHandler{products: products, categories: categories, history: history, auditLogs: auditLogs}
}

// RegisterRoutes expects admin to be behind BearerAuth and RequireRole(admin).
func (h *AdminProductHandler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.PUT("/inventory/:product_id", h.updateInventory)
	admin.GET("/inventory/:product_id/adjustments", h.listAdjustments)

	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/audit-logs", h.listAuditLogs)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ProductCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.products.AdminCreateProduct(c.Request().Context(), actor, usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req ProductUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.products.AdminUpdateProduct(c.Request().Context(), actor, id, usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.products.AdminDeleteProduct(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminProductHandler) updateInventory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "product_id")
	if err != nil {
		return err
	}
	var req InventoryUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	stock := int64(-1)
	if req.Stock != nil {
		stock = *req.Stock
	}

	out, err := h.products.AdminUpdateInventory(c.Request().Context(), actor, productID, stock, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) listAdjustments(c echo.Context) error {
	productID, err := uuidParam(c, "product_id")
	if err != nil {
		return err
	}
	limit, err := queryIntPtr(c, "limit")
	if err != nil {
		return err
	}

	adjs, err := h.history.List(c.Request().Context(), productID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adjs)
}

func (h *AdminProductHandler) createCategory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cat, err := h.categories.AdminCreate(c.Request().Context(), actor, usecase.CategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminProductHandler) updateCategory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cat, err := h.categories.AdminUpdate(c.Request().Context(), actor, id, usecase.CategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *AdminProductHandler) deleteCategory(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.categories.AdminDelete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) listAuditLogs(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, err := queryIntPtr(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	logs, err := h.auditLogs.List(c.Request().Context(), actor, usecase.ListAuditLogsInput{
		ActorUserID:  c.QueryParam("actor_user_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
