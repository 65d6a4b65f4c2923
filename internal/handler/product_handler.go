package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/usecase"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
}

func NewProductHandler(products *usecase.ProductUsecase, categories *usecase.CategoryUsecase) *ProductHandler {
	return &ProductHandler{products: products, categories: categories}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/in-stock", h.inStock)
	e.GET("/products/out-of-stock", h.outOfStock)
	e.GET("/products/low-stock", h.lowStock)
	e.GET("/products/price-range", h.priceRange)
	e.GET("/products/:id", h.detail)
	e.GET("/products/:id/stock", h.stock)

	e.GET("/categories", h.listCategories)
	e.GET("/categories/:id", h.getCategory)
}

// listInput reads skip, limit, q, min_price, max_price, sort and category_id.
func listInput(c echo.Context) (usecase.ListProductsInput, error) {
	var in usecase.ListProductsInput
	var err error

	if in.Skip, err = queryInt(c, "skip", 0); err != nil {
		return in, err
	}
	if in.Limit, err = queryIntPtr(c, "limit"); err != nil {
		return in, err
	}
	if in.MinPrice, err = queryInt64Ptr(c, "min_price"); err != nil {
		return in, err
	}
	if in.MaxPrice, err = queryInt64Ptr(c, "max_price"); err != nil {
		return in, err
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return in, apperr.ErrValidation.WithMessage("invalid category_id")
		}
		in.CategoryID = &id
	}
	in.Q = c.QueryParam("q")
	in.Sort = c.QueryParam("sort")
	return in, nil
}

func (h *ProductHandler) list(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	out, err := h.products.ListProducts(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) inStock(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	out, err := h.products.ListInStock(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) outOfStock(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	out, err := h.products.ListOutOfStock(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) lowStock(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	threshold, err := queryInt(c, "threshold", 10)
	if err != nil {
		return err
	}
	out, err := h.products.ListLowStock(c.Request().Context(), in, int64(threshold))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) priceRange(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	out, err := h.products.ListByPriceRange(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.products.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) stock(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.products.StockOf(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) listCategories(c echo.Context) error {
	cs, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *ProductHandler) getCategory(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cat, err := h.categories.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}
