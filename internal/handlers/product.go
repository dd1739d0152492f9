package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/events"
	"github.com/campusbazaar/backend/internal/logging"
	"github.com/campusbazaar/backend/internal/service"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	products, err := h.Svc.Products(ctx)
	if err != nil {
		l.Error("list_products_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, id.UserID, req)
	if err != nil {
		l.Warn("create_product_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"vendorID":  product.VendorID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := identity(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c)
	if err != nil {
		return err
	}

	var patch service.ProductPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, id.UserID, productID, patch)
	if err != nil {
		l.Warn("update_product_failed", "productID", productID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"vendorID":  product.VendorID,
	})

	l.Info("update_product_success", "productID", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := identity(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id.UserID, productID); err != nil {
		l.Warn("delete_product_failed", "productID", productID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(productID), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
		"vendorID":  id.UserID,
	})

	l.Info("delete_product_success", "productID", productID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product removed successfully."})
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}
