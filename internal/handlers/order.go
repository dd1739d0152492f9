package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/events"
	"github.com/campusbazaar/backend/internal/logging"
	"github.com/campusbazaar/backend/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

type createOrderRequest struct {
	Items         []service.OrderLine `json:"items"`
	PaymentMethod string              `json:"paymentMethod"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	id, err := identity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, id.UserID, req.Items, req.PaymentMethod)
	if err != nil {
		l.Warn("create_order_failed", "studentID", id.UserID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":      "order_created",
		"orderID":   order.ID,
		"reference": order.Reference,
		"studentID": order.StudentID,
		"vendorID":  order.VendorID,
		"total":     order.TotalAmount,
	})

	l.Info("create_order_success", "orderID", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, echo.Map{
		"order":   order,
		"message": service.PaymentInstruction,
	})
}

func (h *OrderHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.history")

	id, err := identity(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.History(ctx, id)
	if err != nil {
		l.Warn("order_history_failed", "userID", id.UserID, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.confirm")

	id, err := identity(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.ConfirmPayment(ctx, id.UserID, orderID)
	if err != nil {
		l.Warn("confirm_payment_failed", "orderID", orderID, "vendorID", id.UserID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":     "order_confirmed",
		"orderID":  order.ID,
		"vendorID": order.VendorID,
	})

	l.Info("confirm_payment_success", "orderID", order.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Payment confirmed and order status updated.",
		"order":   order,
	})
}
