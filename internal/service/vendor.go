package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
)

type VendorService struct {
	Repo *repo.GormRepo
}

// ProfilePatch updates the vendor-facing payment fields; empty strings keep
// the current value.
type ProfilePatch struct {
	ShopName  string `json:"shopName"`
	UpiID     string `json:"upiId"`
	QRCodeURL string `json:"qrCodeUrl"`
}

type SalesReport struct {
	Summary      repo.SalesSummary   `json:"summary"`
	ProductSales []repo.ProductSales `json:"productSales"`
}

func (s *VendorService) UpdateProfile(ctx context.Context, vendorID uint, patch ProfilePatch) (*models.User, error) {
	vendor, err := s.Repo.UserByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vendor", ErrNotFound)
		}
		return nil, err
	}

	if patch.ShopName != "" {
		vendor.ShopName = patch.ShopName
	}
	if patch.UpiID != "" {
		vendor.UpiID = patch.UpiID
	}
	if patch.QRCodeURL != "" {
		vendor.QRCodeURL = patch.QRCodeURL
	}

	if err := s.Repo.SaveUser(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// SalesSummary reports totals and a per-product breakdown over confirmed
// orders only; pending orders are not sales yet.
func (s *VendorService) SalesSummary(ctx context.Context, vendorID uint) (*SalesReport, error) {
	summary, err := s.Repo.VendorSalesSummary(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	perProduct, err := s.Repo.VendorProductSales(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &SalesReport{Summary: *summary, ProductSales: perProduct}, nil
}
