package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/ecommerce-backend/internal/service"
	"github.com/arkumar/ecommerce-backend/internal/transport"
	"github.com/arkumar/ecommerce-backend/internal/util"
	"github.com/arkumar/ecommerce-backend/internal/validate"
	"github.com/arkumar/ecommerce-backend/pkg/idempotency"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fe := validate.Checkout(req.ShippingAddress, req.PaymentMethod); !fe.OK() {
		return fieldErrorsResponse(c, fe)
	}

	placed, err := h.Svc.Checkout(ctx, userID, service.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		IdempotencyKey:  idempotency.Key(c.Request()),
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, transport.NewOrderResponse(placed))
}

func (h *CheckoutHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListOrders(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, orders)
}
