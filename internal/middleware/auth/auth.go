// Package auth is the access-control gate: it verifies the bearer token,
// loads the identity behind it, enforces the vendor/admin approval flag and
// exposes role-capability middleware on top of the authz table.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/authz"
	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
	"github.com/campusbazaar/backend/internal/tokens"
)

const identityKey = "identity"

type Authenticator struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// RequireAuth parses the Authorization header, loads the user and attaches
// the identity to the request. Unapproved vendors and admins are rejected
// even when the token itself is valid.
func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, prefix), a.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed or expired")
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed or expired")
		}

		user, err := a.Repo.UserByID(c.Request().Context(), userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, user not found")
		}
		if (user.Role == models.RoleVendor || user.Role == models.RoleAdmin) && !user.IsApproved {
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("%s account is pending admin approval", user.Role))
		}

		c.Set(identityKey, authz.Identity{
			UserID:     user.ID,
			Role:       user.Role,
			IsApproved: user.IsApproved,
		})
		return next(c)
	}
}

// Require gates a route on the authz capability table.
func (a *Authenticator) Require(resource authz.Resource, action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			if err := authz.Authorize(id, resource, action); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (authz.Identity, bool) {
	id, ok := c.Get(identityKey).(authz.Identity)
	return id, ok
}

// SetIdentity is used by tests to inject an identity without a token.
func SetIdentity(c echo.Context, id authz.Identity) {
	c.Set(identityKey, id)
}
