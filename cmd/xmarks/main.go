package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/xmarks/internal/app"
)

func main() {
	// Credentials and settings may live in a local .env file; a missing
	// file is fine, the environment itself still applies.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ xmarks failed to start: %v", err)
	}
}
