// seed inserts a demo user and a handful of products into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mfiguera/product-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type productSpec struct {
	name        string
	description string
	price       float64
}

var products = []productSpec{
	{"Mechanical Keyboard", "Tenkeyless, brown switches", 89.90},
	{"USB-C Dock", "Dual 4K output, 96W passthrough", 149.00},
	{"Laptop Stand", "Aluminium, foldable", 32.50},
	{"Webcam", "1080p60 with privacy shutter", 59.99},
	{"Desk Mat", "900x400mm, stitched edges", 19.99},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, spec := range products {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO products (name, description, price, owner_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			spec.name, spec.description, spec.price, userID,
		).Scan(&id)
		if err != nil {
			log.Fatalf("insert product %q: %v", spec.name, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Products: %d\n", inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/user/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — list products (no auth needed):")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:8080/api/product/readall")
	fmt.Println()
	fmt.Println("  Step 3 — create one:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s -X POST http://localhost:8080/api/product/create \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"name\":\"Monitor\",\"description\":\"27in 1440p\",\"price\":229.0}'")
}
