package main

import (
	"context"
	"log"
	"time"

	"github.com/haneulab/thumbsmith-api/config"
	"github.com/haneulab/thumbsmith-api/controller"
	"github.com/haneulab/thumbsmith-api/infra"
	"github.com/haneulab/thumbsmith-api/infra/produce"
	"github.com/haneulab/thumbsmith-api/provider"
	"github.com/haneulab/thumbsmith-api/repository"
	routes "github.com/haneulab/thumbsmith-api/route"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()

	ctx := context.Background()
	shutdownTelemetry, err := infra.InitObservability(ctx, cfg.EnvConfig)
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}()

	inf := infra.InitInfra(cfg)
	defer inf.Close(ctx)

	if inf.Minio != nil {
		if err := inf.Minio.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to ensure thumbnail bucket: %v", err)
		}
	}

	prov := provider.InitProvider(cfg)
	repo := repository.InitRepository(inf)

	var prod *produce.Produce
	if inf.RabbitMQ != nil {
		prod = produce.InitProduce(inf.RabbitMQ.Channel)
	}

	ctrl := controller.NewController(cfg, inf, prov, repo, prod)

	router := routes.SetupRouter(ctrl)
	if err := router.Run(":" + cfg.EnvConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
