package repository

import (
	"context"

	"github.com/mfiguera/product-api/internal/domain"
)

type UpdateProductInput struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

type ProductRepository interface {
	// Create inserts the product. Returns domain.ErrUserNotFound if the
	// owner reference does not exist.
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// GetByID and List join the owner's name/email into Product.Owner.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
