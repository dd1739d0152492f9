package repo

import (
	"context"

	"github.com/campusbazaar/backend/internal/models"
)

// Reporting reads only ever look at committed state; confirmed is the only
// status that counts as a sale.

type SalesSummary struct {
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int64   `json:"totalOrders"`
}

type ProductSales struct {
	ProductID         uint    `json:"productId"`
	ProductName       string  `json:"productName"`
	TotalQuantitySold int64   `json:"totalQuantitySold"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// VendorSalesSummary totals a vendor's confirmed orders.
func (r *GormRepo) VendorSalesSummary(ctx context.Context, vendorID uint) (*SalesSummary, error) {
	var s SalesSummary
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_sales, COUNT(*) AS total_orders").
		Where("vendor_id = ? AND status = ?", vendorID, models.OrderStatusConfirmed).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// VendorProductSales breaks a vendor's confirmed sales down per product,
// revenue computed from the purchase-time price snapshots.
func (r *GormRepo) VendorProductSales(ctx context.Context, vendorID uint) ([]ProductSales, error) {
	rows := []ProductSales{}
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, products.name AS product_name, " +
			"SUM(order_items.quantity) AS total_quantity_sold, " +
			"SUM(order_items.quantity * order_items.price_at_purchase) AS total_revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.vendor_id = ? AND orders.status = ?", vendorID, models.OrderStatusConfirmed).
		Group("order_items.product_id, products.name").
		Order("total_revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ConfirmedSales totals confirmed orders across all vendors.
func (r *GormRepo) ConfirmedSales(ctx context.Context) (*SalesSummary, error) {
	var s SalesSummary
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_sales, COUNT(*) AS total_orders").
		Where("status = ?", models.OrderStatusConfirmed).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
