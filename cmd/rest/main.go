package main

import (
	"context"
	"log"

	"ai-question-answer-be/internal/bootstrap"
	"ai-question-answer-be/internal/config"
	"ai-question-answer-be/internal/server"
	"ai-question-answer-be/internal/tracer"
	"ai-question-answer-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Background workers
	go func() {
		log.Println("Background: starting embed consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()
	if container.ContentIngestService != nil {
		go func() {
			log.Println("Background: starting content ingest listener...")
			if err := container.ContentIngestService.Start(); err != nil {
				log.Printf("Content ingest error: %v", err)
			}
		}()
	}

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
