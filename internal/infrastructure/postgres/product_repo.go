package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, owner_id, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.OwnerID)

	created, err := scanProduct(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.owner_id,
		       p.created_at, p.updated_at, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`

	return scanProductWithOwner(r.pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.owner_id,
		       p.created_at, p.updated_at, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProductWithOwner(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, input repository.UpdateProductInput) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, price, owner_id, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, input.ID, input.Name, input.Description, input.Price)
	return scanProduct(row)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return &p, nil
}

func scanProductWithOwner(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var o domain.Owner
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID,
		&p.CreatedAt, &p.UpdatedAt, &o.Name, &o.Email)
	if err != nil {
		return nil, mapProductErr(err)
	}
	p.Owner = &o
	return &p, nil
}

// mapProductErr normalizes "absent" outcomes to ErrProductNotFound. A
// malformed uuid in the path (pg code 22P02) is indistinguishable from a
// missing row to the caller, so it gets a 404 rather than a 500.
func mapProductErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return domain.ErrProductNotFound
	}
	return fmt.Errorf("scan product: %w", err)
}
