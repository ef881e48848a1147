package model

import (
	"time"

	"github.com/smartwarranty/warranty-go/internal/warranty"
)

// Product represents a registered product in the database. ExpiryDate is
// computed once at creation from PurchaseDate and WarrantyDays; renaming a
// product never recomputes it.
type Product struct {
	ID           int64
	UserID       int64
	Name         string
	PurchaseDate time.Time
	WarrantyDays int
	ExpiryDate   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateProductRequest represents a product registration request.
// purchase_date is a calendar date in 2006-01-02 form.
type CreateProductRequest struct {
	Name         string `json:"product_name"`
	PurchaseDate string `json:"purchase_date"`
	WarrantyDays int    `json:"warranty_period_days"`
}

// UpdateProductRequest represents a product update. Only the name is mutable.
type UpdateProductRequest struct {
	Name string `json:"product_name"`
}

// ProductResponse represents a product annotated with its warranty status.
type ProductResponse struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	PurchaseDate  string          `json:"purchase_date"`
	WarrantyDays  int             `json:"warranty_period_days"`
	ExpiryDate    string          `json:"expiry_date"`
	DaysRemaining int             `json:"days_remaining"`
	Status        warranty.Status `json:"status"`
	QRCode        string          `json:"qr_code"`
}
