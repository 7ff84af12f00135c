package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/mykafka"
	"github.com/grocerease/grocery-shop/internal/service"
	"github.com/grocerease/grocery-shop/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func createCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password, req.Name); err != nil {
		l.Warn("register_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "user_events", map[string]any{
		"type":     "user_registered",
		"username": req.Username,
	})
	return c.NoContent(http.StatusCreated)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	c.SetCookie(createCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	return c.JSON(http.StatusOK, transport.LoginResponse{IsAdmin: res.IsAdmin})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	c.SetCookie(createCookie("accessToken", "", "/", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	userID, err := GetID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, service.ProfileUpdate{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Name:            req.Name,
	})
	if err != nil {
		l.Warn("update_profile_error", "status", statusFromError(err), "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
