package main

import (
	"context"
	"log"

	"ai-editor-be/internal/bootstrap"
	"ai-editor-be/internal/config"
	"ai-editor-be/internal/model"
	"ai-editor-be/internal/server"
	"ai-editor-be/internal/tracer"
	"ai-editor-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.UserPreference{}, &model.KnowledgeDocument{}); err != nil {
		log.Printf("Warning: auto-migration failed: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Ingestion Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Loading Knowledge Bases...")
		if err := container.KnowledgeService.LoadAtStartup(context.Background()); err != nil {
			log.Printf("Background Knowledge Load Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
