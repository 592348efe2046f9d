package main

import (
	"context"
	"log"

	"ai-chatbot-be/internal/bootstrap"
	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/internal/server"
	"ai-chatbot-be/internal/tracer"
	"ai-chatbot-be/pkg/database"
	"ai-chatbot-be/pkg/knowledge"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (only the pgvector backend needs one)
	var gormDB *gorm.DB
	if cfg.Knowledge.Backend == "pgvector" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Prepare the vector collection so first writes cannot race it
	if err := container.Store.EnsureCollection(context.Background()); err != nil {
		log.Printf("Warning: knowledge store not reachable yet: %v", err)
	} else if cfg.Knowledge.SeedDefaults {
		if seeded, err := knowledge.SeedDefaults(context.Background(), container.Store); err != nil {
			log.Printf("Warning: default knowledge seeding failed: %v", err)
		} else {
			log.Printf("Seeded %d default knowledge document(s)", seeded)
		}
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
