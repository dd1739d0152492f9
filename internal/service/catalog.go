package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
)

// DefaultImageURL stands in until a real upload pipeline exists.
const DefaultImageURL = "default-image-url"

type CatalogService struct {
	Repo *repo.GormRepo
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// ProductPatch carries partial updates; nil fields keep current values.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"imageUrl"`
}

func (s *CatalogService) Products(ctx context.Context) ([]repo.ProductView, error) {
	return s.Repo.ProductsWithVendor(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, vendorID uint, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: name, description and category are required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if in.ImageURL == "" {
		in.ImageURL = DefaultImageURL
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		VendorID:    vendorID,
		ImageURL:    in.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, vendorID, productID uint, patch ProductPatch) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, vendorID, productID, "edit")
	if err != nil {
		return nil, err
	}

	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, vendorID, productID uint) error {
	if _, err := s.ownedProduct(ctx, vendorID, productID, "delete"); err != nil {
		return err
	}
	return s.Repo.DeleteProduct(ctx, productID)
}

func (s *CatalogService) ownedProduct(ctx context.Context, vendorID, productID uint, verb string) (*models.Product, error) {
	p, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}
	if p.VendorID != vendorID {
		return nil, fmt.Errorf("%w: not authorized to %s this product", ErrForbidden, verb)
	}
	return p, nil
}
