package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/marque/internal/app"
)

func main() {
	// .env is optional, real deployments set variables directly
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ marque failed to start: %v", err)
	}
}
