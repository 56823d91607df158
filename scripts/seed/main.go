// Seeds the database with sample users, recipes, and meal plans.
// Usage: go run scripts/seed/main.go
package main

import (
	"log"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Sample user IDs for testing:")
	log.Println("  11111111-1111-1111-1111-111111111111 (Brooklyn)")
	log.Println("  22222222-2222-2222-2222-222222222222 (Chicago)")
	log.Println("  33333333-3333-3333-3333-333333333333 (Amsterdam)")
}
