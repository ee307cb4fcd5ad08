package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/pipeline"
	"github.com/ignite/campaign-insights/internal/store"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	log.Println("Starting campaign-insights pipeline run...")

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

	var reportStore *store.ReportStore
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Println("Connected to database")
		reportStore = store.NewReportStore(db)
	} else {
		log.Println("No DATABASE_URL configured - computing report without persistence")
	}

	var cache *store.ReportCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cache = store.NewReportCache(redisClient, cfg.Redis.TTL())
	}

	runner := pipeline.NewRunner(loader, reportStore, cache)
	result, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	log.Printf("Run %s complete: %d raw rows -> %d cleaned -> %d report rows (%s)",
		result.RunID, result.RawRows, result.CleanedRows, result.ReportRows, result.Duration)
}
