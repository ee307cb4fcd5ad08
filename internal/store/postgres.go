package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/campaign-insights/internal/kpi"
)

// ReportStore persists the unified campaign-effectiveness report in
// Postgres. The table is overwritten wholesale on every run; there is no
// incremental update contract.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

// EnsureSchema creates the report table if it does not exist yet.
func (s *ReportStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS campaign_effectiveness_report (
			segment TEXT NOT NULL,
			segment_value TEXT NOT NULL,
			total_contacts BIGINT NOT NULL,
			conversions BIGINT NOT NULL,
			conversion_rate_pct NUMERIC(6,2) NOT NULL,
			relative_effectiveness_index NUMERIC(8,2),
			report_generated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure report schema: %w", err)
	}
	return nil
}

// Overwrite replaces the report table contents with the given rows inside
// a single transaction, so dashboard readers never observe a half-written
// report.
func (s *ReportStore) Overwrite(ctx context.Context, rows []kpi.ReportRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin report overwrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_effectiveness_report`); err != nil {
		return fmt.Errorf("failed to clear report table: %w", err)
	}

	for _, row := range rows {
		index := sql.NullFloat64{}
		if row.RelativeEffectivenessIndex != nil {
			index = sql.NullFloat64{Float64: *row.RelativeEffectivenessIndex, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO campaign_effectiveness_report
				(segment, segment_value, total_contacts, conversions,
				 conversion_rate_pct, relative_effectiveness_index, report_generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			row.Segment, row.SegmentValue, row.TotalContacts, row.Conversions,
			row.ConversionRatePct, index, row.ReportGeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert report row (%s, %s): %w", row.Segment, row.SegmentValue, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report overwrite: %w", err)
	}
	return nil
}

// Latest reads the current report in presentation order.
func (s *ReportStore) Latest(ctx context.Context) ([]kpi.ReportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT segment, segment_value, total_contacts, conversions,
		       conversion_rate_pct, relative_effectiveness_index, report_generated_at
		FROM campaign_effectiveness_report
		ORDER BY segment ASC, conversion_rate_pct DESC, segment_value ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	defer rows.Close()

	var report []kpi.ReportRow
	for rows.Next() {
		var row kpi.ReportRow
		var index sql.NullFloat64
		if err := rows.Scan(
			&row.Segment, &row.SegmentValue, &row.TotalContacts, &row.Conversions,
			&row.ConversionRatePct, &index, &row.ReportGeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if index.Valid {
			v := index.Float64
			row.RelativeEffectivenessIndex = &v
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading report rows: %w", err)
	}
	return report, nil
}
