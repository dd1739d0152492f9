package repo

import (
	"context"

	"github.com/campusbazaar/backend/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) Vendors(ctx context.Context) ([]models.User, error) {
	var vendors []models.User
	err := r.DB.WithContext(ctx).
		Where("role = ?", models.RoleVendor).
		Order("created_at DESC").
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *GormRepo) CountUsers(ctx context.Context, role string, approvedOnly bool) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", role)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
