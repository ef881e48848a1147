package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/qrcode"
	"github.com/smartwarranty/warranty-go/internal/repository"
	"github.com/smartwarranty/warranty-go/internal/warranty"
)

var (
	ErrProductNameRequired  = errors.New("product_name is required")
	ErrPurchaseDateRequired = errors.New("purchase_date is required")
	ErrInvalidPurchaseDate  = errors.New("purchase_date must be a YYYY-MM-DD date")
	ErrInvalidWarrantyDays  = errors.New("warranty_period_days must be a non-negative integer")
	ErrOwnerNotFound        = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
)

// ProductService handles product registration, lookups, and dashboard assembly.
type ProductService struct {
	products         ProductStore
	users            UserStore
	qr               *qrcode.Generator
	enforceOwnership bool
}

// NewProductService creates a new ProductService. enforceOwnership restricts
// reads and writes on a product to its owning user.
func NewProductService(products ProductStore, users UserStore, qr *qrcode.Generator, enforceOwnership bool) *ProductService {
	return &ProductService{
		products:         products,
		users:            users,
		qr:               qr,
		enforceOwnership: enforceOwnership,
	}
}

// Create registers a product for the given user, computing and storing its
// expiry date, and writes the product QR image.
func (s *ProductService) Create(ctx context.Context, userID int64, req model.CreateProductRequest) (model.ProductResponse, error) {
	if req.Name == "" {
		return model.ProductResponse{}, ErrProductNameRequired
	}
	if req.PurchaseDate == "" {
		return model.ProductResponse{}, ErrPurchaseDateRequired
	}

	purchase, err := time.Parse(warranty.DateLayout, req.PurchaseDate)
	if err != nil {
		return model.ProductResponse{}, ErrInvalidPurchaseDate
	}

	expiry, err := warranty.ComputeExpiry(purchase, req.WarrantyDays)
	if err != nil {
		return model.ProductResponse{}, ErrInvalidWarrantyDays
	}

	// A product must reference an existing owner at creation time.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProductResponse{}, ErrOwnerNotFound
		}
		return model.ProductResponse{}, err
	}

	product := &model.Product{
		UserID:       userID,
		Name:         req.Name,
		PurchaseDate: warranty.Date(purchase),
		WarrantyDays: req.WarrantyDays,
		ExpiryDate:   expiry,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return model.ProductResponse{}, err
	}

	// A failed image write is not fatal: the code can be regenerated on
	// demand from the product ID.
	if _, err := s.qr.Write(product.ID); err != nil {
		slog.Warn("qr code generation failed", "product_id", product.ID, "error", err)
	}

	return s.toResponse(product, warranty.Today()), nil
}

// Get retrieves a single product with its computed status. A missing product
// and a product owned by someone else yield the same not-found error.
func (s *ProductService) Get(ctx context.Context, callerID, productID int64) (model.ProductResponse, error) {
	product, err := s.getOwned(ctx, callerID, productID)
	if err != nil {
		return model.ProductResponse{}, err
	}
	return s.toResponse(product, warranty.Today()), nil
}

// Rename updates a product's name. The stored expiry date is deliberately
// left untouched: warranty terms are fixed at registration.
func (s *ProductService) Rename(ctx context.Context, callerID, productID int64, req model.UpdateProductRequest) (model.ProductResponse, error) {
	if req.Name == "" {
		return model.ProductResponse{}, ErrProductNameRequired
	}

	product, err := s.getOwned(ctx, callerID, productID)
	if err != nil {
		return model.ProductResponse{}, err
	}

	if err := s.products.UpdateName(ctx, productID, req.Name); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.ProductResponse{}, ErrProductNotFound
		}
		return model.ProductResponse{}, err
	}

	product.Name = req.Name
	return s.toResponse(product, warranty.Today()), nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, callerID, productID int64) error {
	if _, err := s.getOwned(ctx, callerID, productID); err != nil {
		return err
	}

	err := s.products.Delete(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return err
}

// QRCode renders the product's QR image bytes.
func (s *ProductService) QRCode(ctx context.Context, callerID, productID int64) ([]byte, error) {
	if _, err := s.getOwned(ctx, callerID, productID); err != nil {
		return nil, err
	}
	return s.qr.Encode(productID)
}

// Dashboard returns every product owned by the user annotated with its
// status. The reference date is evaluated once, so all rows in one response
// agree even if the request straddles midnight. A user with no products gets
// an empty list.
func (s *ProductService) Dashboard(ctx context.Context, userID int64) ([]model.ProductResponse, error) {
	products, err := s.products.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.productsToResponse(products, warranty.Today()), nil
}

// getOwned fetches a product and applies the ownership policy.
func (s *ProductService) getOwned(ctx context.Context, callerID, productID int64) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.enforceOwnership && product.UserID != callerID {
		return nil, ErrProductNotFound
	}

	return product, nil
}

func (s *ProductService) toResponse(p *model.Product, today time.Time) model.ProductResponse {
	daysRemaining := warranty.DaysRemaining(today, p.ExpiryDate)
	return model.ProductResponse{
		ProductID:     p.ID,
		ProductName:   p.Name,
		PurchaseDate:  p.PurchaseDate.Format(warranty.DateLayout),
		WarrantyDays:  p.WarrantyDays,
		ExpiryDate:    p.ExpiryDate.Format(warranty.DateLayout),
		DaysRemaining: daysRemaining,
		Status:        warranty.StatusFor(daysRemaining),
		QRCode:        s.qr.CodePath(p.ID),
	}
}

func (s *ProductService) productsToResponse(products []model.Product, today time.Time) []model.ProductResponse {
	result := make([]model.ProductResponse, len(products))
	for i := range products {
		result[i] = s.toResponse(&products[i], today)
	}
	return result
}
