package kpi

import (
	"sort"
	"sync"
	"time"

	"github.com/ignite/campaign-insights/internal/contact"
)

// ReportRow is one row of the unified campaign-effectiveness report, the
// final output table read wholesale by the dashboards.
type ReportRow struct {
	Segment                    string    `json:"segment"`
	SegmentValue               string    `json:"segment_value"`
	TotalContacts              int       `json:"total_contacts"`
	Conversions                int       `json:"conversions"`
	ConversionRatePct          float64   `json:"conversion_rate_pct"`
	RelativeEffectivenessIndex *float64  `json:"relative_effectiveness_index"` // nil when the general rate is 0
	ReportGeneratedAt          time.Time `json:"report_generated_at"`
}

// BuildReport computes the ten per-dimension aggregates over the cleaned
// records, unions them, and runs the normalization pass against the
// General/Todos conversion rate.
//
// The ten aggregates are independent and computed fan-out/fan-in: each
// goroutine reads the shared record slice and writes only its own result
// slot. The union and the General scalar lookup are the single barrier
// before the per-row normalization.
//
// An empty input yields an empty report, not an error. generatedAt is
// stamped on every row unchanged so a frozen clock reproduces identical
// output.
func BuildReport(records []contact.CleanedContact, generatedAt time.Time) []ReportRow {
	dims := Dimensions()
	results := make([][]SegmentStat, len(dims))

	var wg sync.WaitGroup
	for i, dim := range dims {
		wg.Add(1)
		go func(i int, dim Dimension) {
			defer wg.Done()
			results[i] = Aggregate(records, dim)
		}(i, dim)
	}
	wg.Wait()

	var unified []SegmentStat
	for _, stats := range results {
		unified = append(unified, stats...)
	}

	// Phase 1 complete: capture the General/Todos rate once. Phase 2 maps
	// every row against that scalar.
	generalRate := 0.0
	for _, s := range unified {
		if s.Segment == SegmentGeneral && s.SegmentValue == ValueAll {
			generalRate = s.ConversionRatePct
			break
		}
	}

	rows := make([]ReportRow, 0, len(unified))
	for _, s := range unified {
		row := ReportRow{
			Segment:           s.Segment,
			SegmentValue:      s.SegmentValue,
			TotalContacts:     s.TotalContacts,
			Conversions:       s.Conversions,
			ConversionRatePct: s.ConversionRatePct,
			ReportGeneratedAt: generatedAt,
		}
		if generalRate != 0 {
			idx := round2(s.ConversionRatePct / generalRate)
			row.RelativeEffectivenessIndex = &idx
		}
		rows = append(rows, row)
	}

	// Presentation contract: segment ascending, conversion rate descending
	// within a segment. Segment value breaks rate ties so output order is
	// reproducible.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Segment != rows[j].Segment {
			return rows[i].Segment < rows[j].Segment
		}
		if rows[i].ConversionRatePct != rows[j].ConversionRatePct {
			return rows[i].ConversionRatePct > rows[j].ConversionRatePct
		}
		return rows[i].SegmentValue < rows[j].SegmentValue
	})
	return rows
}
