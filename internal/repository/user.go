package repository

import (
	"context"

	"github.com/mfiguera/product-api/internal/domain"
)

// Usecases depend on interfaces, not concrete implementations, so the
// store can be swapped and tests can inject fakes.
type UserRepository interface {
	// Create inserts the user and returns it with ID and timestamps set.
	// Returns domain.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
