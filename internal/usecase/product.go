package usecase

import (
	"context"
	"fmt"

	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/repository"
)

type ProductUsecase struct {
	repo repository.ProductRepository
}

func NewProductUsecase(repo repository.ProductRepository) *ProductUsecase {
	return &ProductUsecase{repo: repo}
}

type CreateProductInput struct {
	OwnerID     string
	Name        string
	Description string
	Price       float64
}

func (u *ProductUsecase) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	created, err := u.repo.Create(ctx, &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OwnerID:     input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (u *ProductUsecase) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.repo.GetByID(ctx, id)
}

type UpdateProductInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Price       float64
}

// Update mutates a product after the ownership gate. Existence is checked
// first so a missing product is always a 404, never a 403.
func (u *ProductUsecase) Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	if err := u.authorize(ctx, input.ID, input.UserID); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, repository.UpdateProductInput{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := u.authorize(ctx, id, userID); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

// authorize loads the product and compares its owner against the
// authenticated user. Both sides are canonical uuid strings, so plain
// equality is the whole check.
func (u *ProductUsecase) authorize(ctx context.Context, id, userID string) error {
	product, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerID != userID {
		return domain.ErrNotOwner
	}
	return nil
}
