package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/authz"
	"github.com/campusbazaar/backend/internal/handlers"
	authmw "github.com/campusbazaar/backend/internal/middleware/auth"
)

type Deps struct {
	DB             *gorm.DB
	Auth           *authmw.Authenticator
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	VendorHandler  *handlers.VendorHandler
	AdminHandler   *handlers.AdminHandler
	Started        time.Time
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "Campus Bazaar API is running...",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(d.Started).Seconds(),
		})
	})

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products", d.Auth.RequireAuth)
	products.GET("", d.ProductHandler.List, d.Auth.Require(authz.ResourceProduct, authz.ActionRead))
	products.POST("", d.ProductHandler.Create, d.Auth.Require(authz.ResourceProduct, authz.ActionCreate))
	products.PUT("/:id", d.ProductHandler.Update, d.Auth.Require(authz.ResourceProduct, authz.ActionUpdate))
	products.DELETE("/:id", d.ProductHandler.Delete, d.Auth.Require(authz.ResourceProduct, authz.ActionDelete))

	orders := api.Group("/orders", d.Auth.RequireAuth)
	orders.POST("", d.OrderHandler.Create, d.Auth.Require(authz.ResourceOrder, authz.ActionCreate))
	orders.GET("/history", d.OrderHandler.History, d.Auth.Require(authz.ResourceOrder, authz.ActionRead))
	orders.PUT("/:id/confirm", d.OrderHandler.Confirm, d.Auth.Require(authz.ResourceOrder, authz.ActionConfirm))

	vendors := api.Group("/vendors", d.Auth.RequireAuth)
	vendors.PUT("/profile", d.VendorHandler.UpdateProfile, d.Auth.Require(authz.ResourceVendorProfile, authz.ActionUpdate))
	vendors.GET("/sales-summary", d.VendorHandler.SalesSummary, d.Auth.Require(authz.ResourceSalesReport, authz.ActionRead))

	admin := api.Group("/admin", d.Auth.RequireAuth, d.Auth.Require(authz.ResourceAdmin, authz.ActionManage))
	admin.GET("/vendors", d.AdminHandler.Vendors)
	admin.PUT("/vendors/:id/approve", d.AdminHandler.Approve)
	admin.GET("/invoices", d.AdminHandler.Invoices)
	admin.GET("/dashboard-stats", d.AdminHandler.DashboardStats)
}

// ErrorHandler turns every failure into the {"message": ...} JSON body the
// client surfaces directly.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if code >= 500 {
			log.Error("request failed", "status", code, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, echo.Map{"message": message})
	}
}
