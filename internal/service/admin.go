package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
)

const (
	ApprovalApprove = "approve"
	ApprovalReject  = "reject"

	dashboardInvoiceLimit = 5
)

type AdminService struct {
	Repo *repo.GormRepo
}

type DashboardStats struct {
	TotalVendors   int64            `json:"totalVendors"`
	TotalStudents  int64            `json:"totalStudents"`
	TotalSales     float64          `json:"totalSales"`
	TotalOrders    int64            `json:"totalOrders"`
	LatestInvoices []repo.OrderView `json:"latestInvoices"`
}

func (s *AdminService) Vendors(ctx context.Context) ([]models.User, error) {
	return s.Repo.Vendors(ctx)
}

// SetApproval flips a vendor's approval flag; the only mutation the flag ever
// sees after registration.
func (s *AdminService) SetApproval(ctx context.Context, vendorID uint, status string) (*models.User, error) {
	if status != ApprovalApprove && status != ApprovalReject {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	vendor, err := s.Repo.UserByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vendor %d", ErrNotFound, vendorID)
		}
		return nil, err
	}
	if vendor.Role != models.RoleVendor {
		return nil, fmt.Errorf("%w: vendor %d", ErrNotFound, vendorID)
	}

	vendor.IsApproved = status == ApprovalApprove
	if err := s.Repo.SaveUser(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *AdminService) Invoices(ctx context.Context) ([]repo.OrderView, error) {
	return s.Repo.AllOrders(ctx, 0)
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalVendors, err := s.Repo.CountUsers(ctx, models.RoleVendor, true)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.Repo.CountUsers(ctx, models.RoleStudent, false)
	if err != nil {
		return nil, err
	}
	sales, err := s.Repo.ConfirmedSales(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.Repo.AllOrders(ctx, dashboardInvoiceLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalVendors:   totalVendors,
		TotalStudents:  totalStudents,
		TotalSales:     sales.TotalSales,
		TotalOrders:    sales.TotalOrders,
		LatestInvoices: latest,
	}, nil
}
