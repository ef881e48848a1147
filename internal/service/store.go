package service

import (
	"context"

	"github.com/smartwarranty/warranty-go/internal/model"
)

// UserStore is the user persistence surface the services depend on.
// Satisfied by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProductStore is the product persistence surface the services depend on.
// Satisfied by repository.ProductRepository.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Product, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}
