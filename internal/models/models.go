package models

import "time"

const (
	RoleStudent = "student"
	RoleVendor  = "vendor"
	RoleAdmin   = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid" // reserved, no transition produces it yet
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled" // reserved
)

const (
	PaymentUPIQR  = "UPI_QR"
	PaymentWallet = "WALLET"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleVendor || role == RoleAdmin
}

// User covers all three roles. The shop fields are only meaningful for
// vendors; IsApproved starts false for vendors and admins.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:student" json:"role"`
	ShopName     string    `json:"shopName,omitempty"`
	UpiID        string    `json:"upiId,omitempty"`
	QRCodeURL    string    `json:"qrCodeUrl,omitempty"`
	IsApproved   bool      `gorm:"not null;default:false"   json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `gorm:"not null"                  json:"description"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Category    string    `gorm:"not null"                  json:"category"`
	Stock       int       `gorm:"not null;check:stock >= 0" json:"stock"`
	VendorID    uint      `gorm:"index;not null"            json:"vendorId"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Order always references exactly one student and one vendor. TotalAmount and
// the per-item PriceAtPurchase are snapshots taken at creation time and never
// recomputed from the catalog.
type Order struct {
	ID                 uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	Reference          string      `gorm:"uniqueIndex;not null"      json:"reference"`
	StudentID          uint        `gorm:"index;not null"            json:"studentId"`
	VendorID           uint        `gorm:"index;not null"            json:"vendorId"`
	Items              []OrderItem `json:"items"`
	TotalAmount        float64     `gorm:"not null"                  json:"totalAmount"`
	PaymentMethod      string      `gorm:"not null;default:UPI_QR"   json:"paymentMethod"`
	Status             string      `gorm:"not null;default:pending"  json:"status"`
	PaymentConfirmedAt *time.Time  `json:"paymentConfirmedAt,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID              uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID         uint    `gorm:"index;not null"               json:"orderId"`
	ProductID       uint    `gorm:"not null"                     json:"productId"`
	Quantity        int     `gorm:"not null;check:quantity > 0"  json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null"                     json:"priceAtPurchase"`
}
