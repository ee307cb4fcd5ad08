package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/campaign-insights/internal/contact"
	"github.com/ignite/campaign-insights/internal/kpi"
	"github.com/ignite/campaign-insights/internal/pipeline"
	"github.com/ignite/campaign-insights/internal/store"
	"github.com/redis/go-redis/v9"
)

type stubLoader struct {
	events []contact.RawContactEvent
}

func (s *stubLoader) Load(ctx context.Context) ([]contact.RawContactEvent, error) {
	return s.events, nil
}

func testEvents() []contact.RawContactEvent {
	return []contact.RawContactEvent{
		{DurationSec: 120, Age: 45, Balance: -200, CampaignContacts: 1, DaysSincePrior: -1, ContactMonth: "may", Subscribed: "no"},
		{DurationSec: 90, Age: 70, Balance: 12000, CampaignContacts: 1, DaysSincePrior: -1, ContactMonth: "may", Subscribed: "yes"},
	}
}

func setupHandlers(t *testing.T) *Handlers {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	cache := store.NewReportCache(redisClient, time.Hour)

	runner := pipeline.NewRunner(&stubLoader{events: testEvents()}, nil, cache)
	return NewHandlers(runner, nil, cache)
}

func TestHealthCheck(t *testing.T) {
	h := setupHandlers(t)
	router := SetupRoutes(h)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}
}

func TestRunPipelineTrigger(t *testing.T) {
	h := setupHandlers(t)
	router := SetupRoutes(h)

	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/pipeline/run = %d, body %s", rec.Code, rec.Body.String())
	}

	var result struct {
		RawRows     int `json:"raw_rows"`
		CleanedRows int `json:"cleaned_rows"`
		ReportRows  int `json:"report_rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode run result: %v", err)
	}
	if result.RawRows != 2 || result.CleanedRows != 2 {
		t.Errorf("run result = %+v, want 2 raw / 2 cleaned", result)
	}
	if result.ReportRows == 0 {
		t.Error("expected a non-empty report")
	}
}

func TestGetReportFromCache(t *testing.T) {
	h := setupHandlers(t)
	router := SetupRoutes(h)

	// Trigger a run first so the cache is warm.
	runReq := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", nil)
	runRec := httptest.NewRecorder()
	router.ServeHTTP(runRec, runReq)
	if runRec.Code != http.StatusOK {
		t.Fatalf("trigger run failed: %d", runRec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/report = %d, body %s", rec.Code, rec.Body.String())
	}

	var rows []kpi.ReportRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("empty report from warm cache")
	}

	found := false
	for _, row := range rows {
		if row.Segment == kpi.SegmentGeneral && row.SegmentValue == kpi.ValueAll {
			found = true
			if row.TotalContacts != 2 || row.Conversions != 1 {
				t.Errorf("General row = %+v, want total=2 conversions=1", row)
			}
		}
	}
	if !found {
		t.Error("General/Todos row missing from served report")
	}
}

func TestGetReportNoStoreNoCache(t *testing.T) {
	runner := pipeline.NewRunner(&stubLoader{}, nil, nil)
	h := NewHandlers(runner, nil, nil)
	router := SetupRoutes(h)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /api/report without store = %d, want 503", rec.Code)
	}
}
