package main

import (
	"context"
	"log"

	"empower-commerce-be/internal/bootstrap"
	"empower-commerce-be/internal/config"
	"empower-commerce-be/internal/server"
	"empower-commerce-be/internal/tracer"
	"empower-commerce-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Attribution Exporter...")
		if err := container.AttributionExporter.Consume(context.Background()); err != nil {
			log.Printf("Background Attribution Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
