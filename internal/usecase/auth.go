package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Raising the cost invalidates no existing hashes but slows registration
// and login.
const bcryptCost = 10

const defaultTokenTTL = time.Hour

type AuthUsecase struct {
	users    repository.UserRepository
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, jwtKey []byte, tokenTTL time.Duration) *AuthUsecase {
	if tokenTTL == 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthUsecase{
		users:    users,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register hashes the password and inserts the user. No token is issued;
// the client logs in afterwards. The plaintext password never leaves this
// function.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) error {
	_, err := u.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// The unique index on email is the real guard; Create maps the
	// conflict to ErrEmailTaken even under concurrent registrations.
	_, err = u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns a signed JWT carrying the
// user's identity. Unknown email and wrong password both map to a 400-class
// error; only the message text differs.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrEmailNotRegistered
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.ErrIncorrectPassword
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
