package main

import (
	"log"

	"github.com/rawblock/cadastral-engine/internal/api"
	"github.com/rawblock/cadastral-engine/internal/auditstore"
	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/config"
)

func main() {
	log.Println("Starting cadastral reconciliation engine...")

	cfg := config.Load()

	store, err := auditstore.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer store.Close()
	if err := store.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize audit schema: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load land-use catalog: %v", err)
	}
	ranking := catalog.DefaultRanking()

	wsHub := api.NewHub()
	go wsHub.Run()

	r := api.SetupRouter(store, wsHub, cat, ranking, cfg.RateLimitPerMin)

	log.Printf("Engine running on :%s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
