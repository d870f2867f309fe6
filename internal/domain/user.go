package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrIncorrectPassword  = errors.New("incorrect password")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, never serialized
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
