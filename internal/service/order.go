package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/authz"
	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
)

// PaymentInstruction accompanies every created order; payment itself happens
// out of band via the vendor's QR code.
const PaymentInstruction = "Order created. Complete payment using the vendor's QR code."

type OrderLine struct {
	ProductID uint `json:"product"`
	Quantity  int  `json:"quantity"`
}

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder validates the cart against current stock, snapshots prices,
// enforces the one-order-one-vendor invariant and persists the order as
// pending. The whole read-check-decrement-insert sequence runs in a single
// transaction, so a failing line leaves nothing behind and two carts racing
// for the last unit cannot both win.
func (s *OrderService) CreateOrder(ctx context.Context, studentID uint, lines []OrderLine, paymentMethod string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	switch paymentMethod {
	case "":
		paymentMethod = models.PaymentUPIQR
	case models.PaymentUPIQR, models.PaymentWallet:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, paymentMethod)
	}

	var order *models.Order
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		var (
			vendorID uint
			total    float64
			items    []models.OrderItem
		)
		for _, line := range lines {
			if line.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
			}
			product, err := tx.ProductByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d does not exist", ErrInsufficientStock, line.ProductID)
				}
				return err
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			// The first line fixes the order's vendor; payment confirmation
			// and settlement are per vendor.
			if vendorID == 0 {
				vendorID = product.VendorID
			} else if vendorID != product.VendorID {
				return fmt.Errorf("%w: items from multiple vendors require separate orders", ErrMultiVendorCart)
			}

			ok, err := tx.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			// Snapshot the catalog price, never anything client supplied.
			items = append(items, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        line.Quantity,
				PriceAtPurchase: product.Price,
			})
			total += product.Price * float64(line.Quantity)
		}

		order = &models.Order{
			Reference:     uuid.NewString(),
			StudentID:     studentID,
			VendorID:      vendorID,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: paymentMethod,
			Status:        models.OrderStatusPending,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmPayment advances pending -> confirmed. Only the owning vendor may
// confirm, and only from exactly pending; a second confirm is rejected.
func (s *OrderService) ConfirmPayment(ctx context.Context, vendorID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, fmt.Errorf("%w: not authorized to confirm this order", ErrForbidden)
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: order status is already %s", ErrInvalidTransition, order.Status)
	}

	now := time.Now().UTC()
	order.Status = models.OrderStatusConfirmed
	order.PaymentConfirmedAt = &now
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// History returns the caller's side of the order ledger, newest first.
// Students see orders they placed, vendors orders they fulfil.
func (s *OrderService) History(ctx context.Context, id authz.Identity) ([]repo.OrderView, error) {
	switch id.Role {
	case models.RoleStudent:
		return s.Repo.OrdersByStudent(ctx, id.UserID)
	case models.RoleVendor:
		return s.Repo.OrdersByVendor(ctx, id.UserID)
	default:
		return nil, fmt.Errorf("%w: admins use the invoices endpoint", ErrForbidden)
	}
}
