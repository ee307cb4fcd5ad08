package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/campaign-insights/internal/contact"
	"github.com/ignite/campaign-insights/internal/kpi"
	"github.com/ignite/campaign-insights/internal/source"
	"github.com/ignite/campaign-insights/internal/store"
)

// Runner executes one full pipeline pass: load the raw contact log, clean
// it, build the unified KPI report, and persist the result. The whole
// computation is deterministic for a fixed input and clock; only the
// generation timestamp varies between otherwise identical runs.
type Runner struct {
	loader source.Loader
	store  *store.ReportStore // nil = compute only, skip persistence
	cache  *store.ReportCache // nil = no cache
	clock  func() time.Time
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	RunID       uuid.UUID       `json:"run_id"`
	RawRows     int             `json:"raw_rows"`
	CleanedRows int             `json:"cleaned_rows"`
	ReportRows  int             `json:"report_rows"`
	GeneratedAt time.Time       `json:"generated_at"`
	Duration    time.Duration   `json:"-"`
	Report      []kpi.ReportRow `json:"-"`
}

func NewRunner(loader source.Loader, reportStore *store.ReportStore, cache *store.ReportCache) *Runner {
	return &Runner{
		loader: loader,
		store:  reportStore,
		cache:  cache,
		clock:  time.Now,
	}
}

// SetClock overrides the wall clock used for the report timestamp.
func (r *Runner) SetClock(clock func() time.Time) {
	r.clock = clock
}

// Run executes the two stages in dependency order. Loader and persistence
// errors are fatal for the run; a cache write failure is logged and
// ignored.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New()
	start := time.Now()
	log.Printf("[pipeline] run %s starting", runID)

	raws, err := r.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load raw contact events: %w", err)
	}

	cleaned := contact.CleanAll(raws)
	log.Printf("[pipeline] run %s: %d raw rows, %d after cleaning filter", runID, len(raws), len(cleaned))

	generatedAt := r.clock().UTC()
	report := kpi.BuildReport(cleaned, generatedAt)

	if r.store != nil {
		if err := r.store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		if err := r.store.Overwrite(ctx, report); err != nil {
			return nil, err
		}
	}
	if r.cache != nil {
		if err := r.cache.SetLatest(ctx, report); err != nil {
			log.Printf("[pipeline] run %s: cache write failed (continuing): %v", runID, err)
		}
	}

	result := &RunResult{
		RunID:       runID,
		RawRows:     len(raws),
		CleanedRows: len(cleaned),
		ReportRows:  len(report),
		GeneratedAt: generatedAt,
		Duration:    time.Since(start),
		Report:      report,
	}
	log.Printf("[pipeline] run %s finished: %d report rows in %s", runID, len(report), result.Duration)
	return result, nil
}
