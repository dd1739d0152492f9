package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/events"
	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
	"github.com/campusbazaar/backend/internal/service"
)

type testEnv struct {
	Repo *repo.GormRepo
	Echo *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	return &testEnv{
		Repo: &repo.GormRepo{DB: db},
		Echo: echo.New(),
	}
}

func (env *testEnv) doJSON(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.Echo.NewContext(req, rec)
}

func newAuthHandler(env *testEnv) *AuthHandler {
	return &AuthHandler{
		Svc:      &service.AuthService{Repo: env.Repo, JWTSecret: []byte("test-jwt-secret")},
		Producer: &events.Producer{},
	}
}

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	rec, c := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Chai Corner",
		"email":    "chai@campus.test",
		"password": "password",
		"role":     "vendor",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User    models.User `json:"user"`
		Token   string      `json:"token"`
		Message string      `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "vendor", resp.User.Role)
	require.False(t, resp.User.IsApproved)
	require.NotEmpty(t, resp.Token)
	require.Contains(t, resp.Message, "Awaiting admin approval")

	// Password hash never leaves the server.
	require.NotContains(t, rec.Body.String(), "passwordHash")

	// Same email again fails with 400.
	_, c2 := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Copycat",
		"email":    "chai@campus.test",
		"password": "password",
	})
	err := h.Register(c2)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	_, c := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Asha",
		"email":    "asha@campus.test",
		"password": "password",
	})
	require.NoError(t, h.Register(c))

	rec, c2 := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "asha@campus.test",
		"password": "password",
	})
	require.NoError(t, h.Login(c2))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	_, c3 := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "asha@campus.test",
		"password": "wrong",
	})
	err := h.Login(c3)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginHandler_UnapprovedVendor(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env)

	_, c := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Chai Corner",
		"email":    "chai@campus.test",
		"password": "password",
		"role":     "vendor",
	})
	require.NoError(t, h.Register(c))

	_, c2 := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "chai@campus.test",
		"password": "password",
	})
	err := h.Login(c2)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)

	// Admin approval unlocks the account.
	adminSvc := &service.AdminService{Repo: env.Repo}
	vendor, lookupErr := env.Repo.UserByEmail(c.Request().Context(), "chai@campus.test")
	require.NoError(t, lookupErr)
	_, approveErr := adminSvc.SetApproval(c.Request().Context(), vendor.ID, service.ApprovalApprove)
	require.NoError(t, approveErr)

	rec, c3 := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "chai@campus.test",
		"password": "password",
	})
	require.NoError(t, h.Login(c3))
	require.Equal(t, http.StatusOK, rec.Code)
}
