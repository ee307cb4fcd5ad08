package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/campaign-insights/internal/api"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/pipeline"
	"github.com/ignite/campaign-insights/internal/store"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	log.Println("Starting campaign-insights server...")

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	loader, closeLoader, err := pipeline.BuildLoader(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build source loader: %v", err)
	}
	defer closeLoader()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required for the server (the report API reads from Postgres)")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		log.Fatalf("Failed to ping database: %v", err)
	}
	cancel()
	log.Println("Connected to database")

	reportStore := store.NewReportStore(db)

	var cache *store.ReportCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cache = store.NewReportCache(redisClient, cfg.Redis.TTL())
		log.Printf("Report cache enabled (redis %s)", cfg.Redis.Addr)
	}

	runner := pipeline.NewRunner(loader, reportStore, cache)
	handlers := api.NewHandlers(runner, reportStore, cache)
	server := api.NewServer(cfg.Server.Addr(), handlers)

	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
