package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/campusbazaar/backend/internal/authz"
	"github.com/campusbazaar/backend/internal/events"
	authmw "github.com/campusbazaar/backend/internal/middleware/auth"
	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/service"
)

func seedOrderFixture(t *testing.T, env *testEnv) (student, vendor *models.User, product *models.Product) {
	t.Helper()

	ctx := context.Background()
	student = &models.User{Name: "Asha", Email: "asha@campus.test", PasswordHash: "x", Role: models.RoleStudent, IsApproved: true}
	require.NoError(t, env.Repo.CreateUser(ctx, student))
	vendor = &models.User{Name: "Chai Corner", Email: "chai@campus.test", PasswordHash: "x", Role: models.RoleVendor, IsApproved: true, ShopName: "Chai Corner"}
	require.NoError(t, env.Repo.CreateUser(ctx, vendor))
	product = &models.Product{Name: "Masala Chai", Description: "Hot", Price: 20, Category: "Beverages", Stock: 10, VendorID: vendor.ID}
	require.NoError(t, env.Repo.CreateProduct(ctx, product))
	return student, vendor, product
}

func newOrderHandler(env *testEnv) *OrderHandler {
	return &OrderHandler{
		Svc:      &service.OrderService{Repo: env.Repo},
		Producer: &events.Producer{},
	}
}

func TestOrderCreateHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	student, _, product := seedOrderFixture(t, env)

	rec, c := env.doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"items":         []map[string]any{{"product": product.ID, "quantity": 2}},
		"paymentMethod": models.PaymentUPIQR,
	})
	authmw.SetIdentity(c, authz.Identity{UserID: student.ID, Role: models.RoleStudent, IsApproved: true})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Order   models.Order `json:"order"`
		Message string       `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.OrderStatusPending, resp.Order.Status)
	require.Equal(t, float64(40), resp.Order.TotalAmount)
	require.Equal(t, service.PaymentInstruction, resp.Message)
}

func TestOrderCreateHandler_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	student, _, product := seedOrderFixture(t, env)

	_, c := env.doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"items":         []map[string]any{{"product": product.ID, "quantity": 99}},
		"paymentMethod": models.PaymentUPIQR,
	})
	authmw.SetIdentity(c, authz.Identity{UserID: student.ID, Role: models.RoleStudent, IsApproved: true})

	err := h.Create(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestOrderConfirmHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	student, vendor, product := seedOrderFixture(t, env)

	order, err := h.Svc.CreateOrder(context.Background(), student.ID,
		[]service.OrderLine{{ProductID: product.ID, Quantity: 1}}, models.PaymentUPIQR)
	require.NoError(t, err)

	// A different vendor cannot confirm someone else's order.
	_, c := env.doJSON(t, http.MethodPut, "/api/orders/1/confirm", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	authmw.SetIdentity(c, authz.Identity{UserID: vendor.ID + 100, Role: models.RoleVendor, IsApproved: true})
	confirmErr := h.Confirm(c)
	var he *echo.HTTPError
	require.ErrorAs(t, confirmErr, &he)
	require.Equal(t, http.StatusForbidden, he.Code)

	rec, c2 := env.doJSON(t, http.MethodPut, "/api/orders/1/confirm", nil)
	c2.SetParamNames("id")
	c2.SetParamValues("1")
	authmw.SetIdentity(c2, authz.Identity{UserID: vendor.ID, Role: models.RoleVendor, IsApproved: true})
	require.NoError(t, h.Confirm(c2))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.OrderStatusConfirmed, resp.Order.Status)
	require.NotNil(t, resp.Order.PaymentConfirmedAt)
	require.Equal(t, order.ID, resp.Order.ID)

	// A second confirm is rejected.
	_, c3 := env.doJSON(t, http.MethodPut, "/api/orders/1/confirm", nil)
	c3.SetParamNames("id")
	c3.SetParamValues("1")
	authmw.SetIdentity(c3, authz.Identity{UserID: vendor.ID, Role: models.RoleVendor, IsApproved: true})
	repeatErr := h.Confirm(c3)
	require.ErrorAs(t, repeatErr, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestOrderConfirmHandler_BadID(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)

	_, c := env.doJSON(t, http.MethodPut, "/api/orders/abc/confirm", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	authmw.SetIdentity(c, authz.Identity{UserID: 1, Role: models.RoleVendor, IsApproved: true})

	err := h.Confirm(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
