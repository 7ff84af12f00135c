package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/mykafka"
	"github.com/grocerease/grocery-shop/internal/service"
	"github.com/grocerease/grocery-shop/internal/transport"
	"github.com/grocerease/grocery-shop/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("list_categories_error", "status", 500, "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		l.Warn("create_category_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) RenameCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.rename_category")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("rename_category_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.RenameCategory(ctx, id, req.Name)
	if err != nil {
		l.Warn("rename_category_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	productIDs, err := h.Svc.DeleteCategory(ctx, id)
	if err != nil {
		l.Warn("delete_category_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":        "category_deleted",
		"categoryID":  id,
		"product_ids": productIDs,
	})
	return c.JSON(http.StatusOK, transport.DeleteCategoryResponse{
		CategoryID:        id,
		DeletedProductIDs: productIDs,
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	categoryID := parseIntDefault(c.QueryParam("category_id"), 0)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, uint(categoryID), offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.ProductListResponse{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func parseManuDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	manuDate, err := parseManuDate(req.ManuDate)
	if err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "bad manu_date", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "manu_date must be YYYY-MM-DD")
	}

	prod := models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		CategoryID:        req.CategoryID,
		QuantityAvailable: req.QuantityAvailable,
		ManuDate:          manuDate,
		ImagePath:         req.ImagePath,
	}
	if err := h.Svc.CreateProduct(ctx, &prod); err != nil {
		l.Warn("create_product_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var manuDate time.Time
	if req.ManuDate != nil {
		manuDate, err = parseManuDate(*req.ManuDate)
		if err != nil {
			l.Warn("patch_product_error", "status", 400, "reason", "bad manu_date", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "manu_date must be YYYY-MM-DD")
		}
	}

	prod, err := h.Svc.PatchProduct(ctx, id, func(p *models.Product) {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.CategoryID != nil {
			p.CategoryID = *req.CategoryID
		}
		if req.QuantityAvailable != nil {
			p.QuantityAvailable = *req.QuantityAvailable
		}
		if req.ManuDate != nil {
			p.ManuDate = manuDate
		}
		if req.ImagePath != nil {
			p.ImagePath = *req.ImagePath
		}
	})
	if err != nil {
		l.Warn("patch_product_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}
