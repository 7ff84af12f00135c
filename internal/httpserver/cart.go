package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/mykafka"
	"github.com/grocerease/grocery-shop/internal/service"
	"github.com/grocerease/grocery-shop/internal/transport"
	"github.com/grocerease/grocery-shop/internal/util"
)

type CartHTTP struct {
	Svc      *service.CartService
	Checkout *service.CheckoutService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, total, err := h.Svc.ListCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.CartResponse{Items: lines, Total: total})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, uint(id)); err != nil {
		l.Warn("remove_from_cart_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":         "cart_item_deleted",
		"userID":       userID,
		"deleted_item": id,
	})
	return c.JSON(http.StatusOK, map[string]any{"deleted_item": id})
}

func (h *CartHTTP) MakeOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.make_order")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	summary, err := h.Checkout.Checkout(ctx, userID)
	if err != nil {
		l.Warn("make_order_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":          "order_created",
		"userID":        userID,
		"transactionID": summary.TransactionID,
		"total":         summary.Total,
	})
	return c.JSON(http.StatusCreated, transport.CheckoutResponse{
		TransactionID: summary.TransactionID,
		Total:         summary.Total,
		CreatedAt:     summary.CreatedAt,
		Orders:        summary.Orders,
	})
}

func (h *CartHTTP) TransactionHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.history")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, history, err := h.Checkout.History(ctx, userID, offset, limit)
	if err != nil {
		l.Error("history_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.HistoryResponse{
		Data: history,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}
