// Package authz is the single place where role capabilities live. Route
// middleware asks Authorize instead of sprinkling role checks over handlers;
// ownership of individual rows is still checked by the services, which have
// the row at hand.
package authz

import (
	"errors"

	"github.com/campusbazaar/backend/internal/models"
)

var ErrDenied = errors.New("access denied")

type Resource string

const (
	ResourceProduct       Resource = "product"
	ResourceOrder         Resource = "order"
	ResourceVendorProfile Resource = "vendor_profile"
	ResourceSalesReport   Resource = "sales_report"
	ResourceAdmin         Resource = "admin"
)

type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionConfirm Action = "confirm"
	ActionManage  Action = "manage"
)

// Identity is what the access gate attaches to a request after the token and
// approval checks pass.
type Identity struct {
	UserID     uint
	Role       string
	IsApproved bool
}

var rules = map[Resource]map[Action][]string{
	ResourceProduct: {
		ActionRead:   {models.RoleStudent, models.RoleVendor, models.RoleAdmin},
		ActionCreate: {models.RoleVendor},
		ActionUpdate: {models.RoleVendor},
		ActionDelete: {models.RoleVendor},
	},
	ResourceOrder: {
		ActionCreate:  {models.RoleStudent},
		ActionRead:    {models.RoleStudent, models.RoleVendor},
		ActionConfirm: {models.RoleVendor},
	},
	ResourceVendorProfile: {
		ActionUpdate: {models.RoleVendor},
	},
	ResourceSalesReport: {
		ActionRead: {models.RoleVendor},
	},
	ResourceAdmin: {
		ActionManage: {models.RoleAdmin},
	},
}

func Authorize(id Identity, resource Resource, action Action) error {
	allowed, ok := rules[resource][action]
	if !ok {
		return ErrDenied
	}
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return ErrDenied
}
