package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/source"
)

// BuildLoader constructs the configured raw-event loader. The returned
// closer releases any connection or file handle the loader holds; it is
// never nil.
func BuildLoader(ctx context.Context, cfg *config.Config) (source.Loader, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source.Type {
	case "snowflake":
		loader, err := source.NewSnowflakeLoader(cfg.Snowflake)
		if err != nil {
			return nil, noop, err
		}
		if err := loader.Ping(ctx); err != nil {
			loader.Close()
			return nil, noop, fmt.Errorf("snowflake ping failed: %w", err)
		}
		return loader, loader.Close, nil

	case "csv":
		f, err := os.Open(cfg.Source.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open contact log %s: %w", cfg.Source.Path, err)
		}
		return source.NewCSVLoader(f, cfg.Source.Path), f.Close, nil

	case "s3":
		loader, err := source.NewS3Loader(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return loader, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown source type %q (want snowflake, csv, or s3)", cfg.Source.Type)
	}
}
