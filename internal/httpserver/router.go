package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	authmw "github.com/arkumar/ecommerce-backend/pkg/middleware/auth"
	"github.com/arkumar/ecommerce-backend/pkg/metrics"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	ProductHandler  *ProductHTTP
	JWTSecret       []byte
	Metrics         *metrics.ServerMetrics
	SearchEnabled   bool
}

func Register(e *echo.Echo, d *Deps) {
	// CORS is wide open, matching the upstream deployment.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout, mw.RequireAuth)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	if d.SearchEnabled {
		products.GET("/search", d.ProductHandler.Search)
	}
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := api.Group("/admin", mw.RequireAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	cart := api.Group("/cart", mw.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.PUT("/items/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
	cart.POST("/checkout", d.CheckoutHandler.Checkout)

	orders := api.Group("/orders", mw.RequireAuth)
	orders.GET("", d.CheckoutHandler.ListOrders)
}
