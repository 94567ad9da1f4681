package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/ecommerce-backend/internal/service"
	"github.com/arkumar/ecommerce-backend/internal/transport"
	"github.com/arkumar/ecommerce-backend/internal/validate"
	"github.com/arkumar/ecommerce-backend/pkg/jwthelp"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fe := validate.Register(req.Username, req.Email, req.Password, req.FirstName, req.LastName); !fe.OK() {
		l.Warn("register_validation_failed", "status", 400, "fields", len(fe))
		return fieldErrorsResponse(c, fe)
	}

	res, err := h.Svc.Register(ctx, service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return serviceError(err)
	}

	h.setAuthCookies(c, res)
	return c.JSON(http.StatusOK, transport.NewAuthResponse(res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fe := validate.Login(req.Username, req.Password); !fe.OK() {
		return fieldErrorsResponse(c, fe)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return serviceError(err)
	}

	h.setAuthCookies(c, res)
	return c.JSON(http.StatusOK, transport.NewAuthResponse(res))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil || refreshCookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	res, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(c)
		return serviceError(err)
	}

	h.setAuthCookies(c, res)
	return c.JSON(http.StatusOK, transport.NewAuthResponse(res))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	refreshCookie, err := c.Cookie("refreshToken")
	if err == nil && refreshCookie.Value != "" {
		if err := h.Svc.Logout(ctx, refreshCookie.Value); err != nil {
			h.clearAuthCookies(c)
			l.Error("logout_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) setAuthCookies(c echo.Context, res *service.AuthResult) {
	c.SetCookie(jwthelp.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(jwthelp.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHTTP) clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie("accessToken", "/"))
	c.SetCookie(jwthelp.DeleteCookie("refreshToken", "/"))
}
