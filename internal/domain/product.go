package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("not the product owner")
)

// Owner is the read-only projection of the user that created a product,
// joined in on the public read paths.
type Owner struct {
	Name  string
	Email string
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	OwnerID     string
	Owner       *Owner // populated on reads, nil on writes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
