package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/grocerpos/grocer/internal/platform/db"
)

func main() {
	path := getenv("DB_PATH", "grocery_store.db")
	ctx := context.Background()

	conn, err := db.Open(ctx, path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	fmt.Println("→ Seeding products...")
	n, err := db.Seed(ctx, conn)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}
	if n == 0 {
		fmt.Println("  products table already populated, nothing to do")
		return
	}
	fmt.Printf("  inserted %d products into %s\n", n, path)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
