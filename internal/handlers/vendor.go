package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/logging"
	"github.com/campusbazaar/backend/internal/service"
)

type VendorHandler struct {
	Svc *service.VendorService
}

func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_profile")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var patch service.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_profile_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Svc.UpdateProfile(ctx, id.UserID, patch)
	if err != nil {
		l.Warn("update_profile_failed", "vendorID", id.UserID, "error", err)
		return httpError(err)
	}

	l.Info("update_profile_success", "vendorID", vendor.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Vendor profile updated.",
		"vendor":  vendor,
	})
}

func (h *VendorHandler) SalesSummary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.sales_summary")

	id, err := identity(c)
	if err != nil {
		return err
	}

	report, err := h.Svc.SalesSummary(ctx, id.UserID)
	if err != nil {
		l.Error("sales_summary_failed", "vendorID", id.UserID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
