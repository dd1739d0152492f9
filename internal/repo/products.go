package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/models"
)

// ProductView is the read-side shape for product listings: the catalog row
// plus the vendor display fields the client renders next to it.
type ProductView struct {
	models.Product
	ShopName  string `json:"shopName"`
	QRCodeURL string `json:"qrCodeUrl"`
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *GormRepo) ProductsWithVendor(ctx context.Context) ([]ProductView, error) {
	var views []ProductView
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.*, users.shop_name AS shop_name, users.qr_code_url AS qr_code_url").
		Joins("JOIN users ON users.id = products.vendor_id").
		Order("products.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// DecrementStock takes qty units off a product, guarded so stock can never go
// negative. Reports false when the row no longer has enough stock.
func (r *GormRepo) DecrementStock(ctx context.Context, productID uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
