package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ignite/campaign-insights/internal/kpi"
	"github.com/redis/go-redis/v9"
)

const latestReportKey = "campaign_insights:latest_report"

// ReportCache keeps the most recent report as JSON in Redis so dashboard
// reads skip Postgres. Strictly best-effort: callers treat cache failures
// as a miss, never as a run failure.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReportCache{client: client, ttl: ttl}
}

// SetLatest stores the report under the latest-report key.
func (c *ReportCache) SetLatest(ctx context.Context, rows []kpi.ReportRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.client.Set(ctx, latestReportKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// GetLatest returns the cached report, or (nil, nil) on a cache miss.
func (c *ReportCache) GetLatest(ctx context.Context) ([]kpi.ReportRow, error) {
	data, err := c.client.Get(ctx, latestReportKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}
	var rows []kpi.ReportRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return rows, nil
}
