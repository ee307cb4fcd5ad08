package kpi

import (
	"math"
	"sort"

	"github.com/ignite/campaign-insights/internal/contact"
)

// SegmentStat is one grouped-aggregate row for a single dimension: how many
// contacts landed in the segment value and how many of them converted.
type SegmentStat struct {
	Segment           string
	SegmentValue      string
	TotalContacts     int
	Conversions       int
	ConversionRatePct float64 // 100 * Conversions / TotalContacts, 2 decimals
}

// Aggregate groups the cleaned records by one dimension's value and counts
// totals and conversions per group. Groups only exist for values with at
// least one record, so the rate denominator is never zero. Output is
// ordered by segment value for determinism; the report build re-sorts the
// union for presentation.
func Aggregate(records []contact.CleanedContact, dim Dimension) []SegmentStat {
	type counts struct {
		total       int
		conversions int
	}
	groups := make(map[string]*counts)

	for i := range records {
		value := dim.Value(&records[i])
		g := groups[value]
		if g == nil {
			g = &counts{}
			groups[value] = g
		}
		g.total++
		if records[i].Converted() {
			g.conversions++
		}
	}

	stats := make([]SegmentStat, 0, len(groups))
	for value, g := range groups {
		stats = append(stats, SegmentStat{
			Segment:           dim.Segment,
			SegmentValue:      value,
			TotalContacts:     g.total,
			Conversions:       g.conversions,
			ConversionRatePct: round2(100 * float64(g.conversions) / float64(g.total)),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].SegmentValue < stats[j].SegmentValue
	})
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
