package repo

import (
	"context"

	"github.com/campusbazaar/backend/internal/models"
)

// OrderItemView decorates an order line with the product fields the client
// shows in history lists.
type OrderItemView struct {
	models.OrderItem
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageUrl"`
}

// OrderView joins in vendor and student display fields for history and
// invoice lists.
type OrderView struct {
	models.Order
	Items          []OrderItemView `json:"items"`
	VendorShopName string          `json:"vendorShopName"`
	StudentName    string          `json:"studentName,omitempty"`
	StudentEmail   string          `json:"studentEmail,omitempty"`
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrdersByStudent(ctx context.Context, studentID uint) ([]OrderView, error) {
	return r.orderViews(ctx, 0, "student_id = ?", studentID)
}

func (r *GormRepo) OrdersByVendor(ctx context.Context, vendorID uint) ([]OrderView, error) {
	return r.orderViews(ctx, 0, "vendor_id = ?", vendorID)
}

func (r *GormRepo) AllOrders(ctx context.Context, limit int) ([]OrderView, error) {
	return r.orderViews(ctx, limit, "")
}

// orderViews is the explicit read-side join: orders newest first, then items,
// products and user display fields resolved in bulk.
func (r *GormRepo) orderViews(ctx context.Context, limit int, cond string, args ...any) ([]OrderView, error) {
	q := r.DB.WithContext(ctx).Order("created_at DESC, id DESC")
	if cond != "" {
		q = q.Where(cond, args...)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderView{}, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	userIDs := make([]uint, 0, 2*len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		userIDs = append(userIDs, o.VendorID, o.StudentID)
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error; err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products := map[uint]models.Product{}
	if len(productIDs) > 0 {
		var rows []models.Product
		if err := r.DB.WithContext(ctx).Where("id IN ?", productIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			products[p.ID] = p
		}
	}

	users := map[uint]models.User{}
	{
		var rows []models.User
		if err := r.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	itemsByOrder := map[uint][]OrderItemView{}
	for _, it := range items {
		p := products[it.ProductID]
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], OrderItemView{
			OrderItem:       it,
			ProductName:     p.Name,
			ProductImageURL: p.ImageURL,
		})
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		student := users[o.StudentID]
		views = append(views, OrderView{
			Order:          o,
			Items:          itemsByOrder[o.ID],
			VendorShopName: users[o.VendorID].ShopName,
			StudentName:    student.Name,
			StudentEmail:   student.Email,
		})
	}
	return views, nil
}
