package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/logging"
	"github.com/campusbazaar/backend/internal/service"
)

type AdminHandler struct {
	Svc *service.AdminService
}

func (h *AdminHandler) Vendors(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.vendors")

	vendors, err := h.Svc.Vendors(ctx)
	if err != nil {
		l.Error("list_vendors_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *AdminHandler) Approve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.approve")

	vendorID, err := paramID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("approve_vendor_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Svc.SetApproval(ctx, vendorID, req.Status)
	if err != nil {
		l.Warn("approve_vendor_failed", "vendorID", vendorID, "error", err)
		return httpError(err)
	}

	message := "Vendor approved successfully."
	if !vendor.IsApproved {
		message = "Vendor rejected/unapproved."
	}

	l.Info("approve_vendor_success", "vendorID", vendor.ID, "approved", vendor.IsApproved)
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"vendor":  vendor,
	})
}

func (h *AdminHandler) Invoices(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.invoices")

	invoices, err := h.Svc.Invoices(ctx)
	if err != nil {
		l.Error("list_invoices_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, invoices)
}

func (h *AdminHandler) DashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dashboard_stats")

	stats, err := h.Svc.Dashboard(ctx)
	if err != nil {
		l.Error("dashboard_stats_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
