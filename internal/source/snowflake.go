package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/campaign-insights/internal/contact"
	_ "github.com/snowflakedb/gosnowflake" // Snowflake driver
)

// SnowflakeLoader reads the raw contact-event table straight from the
// warehouse.
type SnowflakeLoader struct {
	db    *sql.DB
	table string
}

// NewSnowflakeLoader opens a warehouse connection for the configured
// source table.
func NewSnowflakeLoader(cfg SnowflakeConfig) (*SnowflakeLoader, error) {
	// DSN format: user:password@account/database/schema?warehouse=xxx
	dsn := fmt.Sprintf("%s:%s@%s/%s/%s",
		cfg.User,
		cfg.Password,
		cfg.Account,
		cfg.Database,
		cfg.Schema,
	)
	if cfg.Warehouse != "" {
		dsn += "?warehouse=" + cfg.Warehouse
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snowflake connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	table := cfg.Table
	if table == "" {
		table = "RAW_CONTACT_EVENTS"
	}
	return &SnowflakeLoader{db: db, table: table}, nil
}

// NewSnowflakeLoaderFromDB wraps an existing connection. Used by tests and
// by callers that manage the pool themselves.
func NewSnowflakeLoaderFromDB(db *sql.DB, table string) *SnowflakeLoader {
	return &SnowflakeLoader{db: db, table: table}
}

// Ping tests the warehouse connection.
func (l *SnowflakeLoader) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// Close closes the warehouse connection.
func (l *SnowflakeLoader) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Load pulls every raw contact event. A scan failure (NULL where a value
// is required, wrong type) is a schema violation and aborts the run.
func (l *SnowflakeLoader) Load(ctx context.Context) ([]contact.RawContactEvent, error) {
	query := fmt.Sprintf(`
		SELECT
			AGE, JOB, MARITAL, EDUCATION, "DEFAULT", BALANCE,
			HOUSING, LOAN, CONTACT, DAY, MONTH, DURATION,
			CAMPAIGN, PDAYS, PREVIOUS, POUTCOME, Y
		FROM %s
	`, l.table)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", l.table, err)
	}
	defer rows.Close()

	var events []contact.RawContactEvent
	for rows.Next() {
		var ev contact.RawContactEvent
		if err := rows.Scan(
			&ev.Age, &ev.Job, &ev.Marital, &ev.Education, &ev.CreditFlag, &ev.Balance,
			&ev.HousingLoan, &ev.PersonalLoan, &ev.Channel, &ev.ContactDay, &ev.ContactMonth, &ev.DurationSec,
			&ev.CampaignContacts, &ev.DaysSincePrior, &ev.PriorContacts, &ev.PriorOutcome, &ev.Subscribed,
		); err != nil {
			return nil, fmt.Errorf("schema violation scanning %s: %w", l.table, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", l.table, err)
	}
	return events, nil
}
