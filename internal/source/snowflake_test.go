package source

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var rawColumns = []string{
	"AGE", "JOB", "MARITAL", "EDUCATION", "DEFAULT", "BALANCE",
	"HOUSING", "LOAN", "CONTACT", "DAY", "MONTH", "DURATION",
	"CAMPAIGN", "PDAYS", "PREVIOUS", "POUTCOME", "Y",
}

func TestSnowflakeLoaderLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(rawColumns).
		AddRow(58, "management", "married", "tertiary", "no", 2143,
			"yes", "no", "unknown", 5, "may", 261, 1, -1, 0, "unknown", "no").
		AddRow(44, "technician", "single", "secondary", "no", 29,
			"yes", "no", "cellular", 5, "may", 151, 1, -1, 0, "unknown", "yes")

	mock.ExpectQuery("SELECT(.|\n)*FROM RAW_CONTACT_EVENTS").WillReturnRows(rows)

	loader := NewSnowflakeLoaderFromDB(db, "RAW_CONTACT_EVENTS")
	events, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Age != 58 || events[0].CreditFlag != "no" || events[0].DaysSincePrior != -1 {
		t.Errorf("first event mismatch: %+v", events[0])
	}
	if events[1].Subscribed != "yes" {
		t.Errorf("second event subscribed = %q, want yes", events[1].Subscribed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSnowflakeLoaderSchemaViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// NULL age where an integer is required: the scan must fail the run.
	rows := sqlmock.NewRows(rawColumns).
		AddRow(nil, "management", "married", "tertiary", "no", 2143,
			"yes", "no", "unknown", 5, "may", 261, 1, -1, 0, "unknown", "no")
	mock.ExpectQuery("SELECT(.|\n)*FROM RAW_CONTACT_EVENTS").WillReturnRows(rows)

	loader := NewSnowflakeLoaderFromDB(db, "RAW_CONTACT_EVENTS")
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected schema-violation error for NULL age, got nil")
	}
}

func TestSnowflakeLoaderQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM MISSING_TABLE").
		WillReturnError(context.DeadlineExceeded)

	loader := NewSnowflakeLoaderFromDB(db, "MISSING_TABLE")
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected query error, got nil")
	}
}
