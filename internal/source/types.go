package source

import (
	"context"

	"github.com/ignite/campaign-insights/internal/contact"
)

// Loader materializes the full raw contact-event table for one pipeline
// run. Implementations are interchangeable: warehouse table, local CSV
// export, or an S3 object holding the same CSV.
type Loader interface {
	Load(ctx context.Context) ([]contact.RawContactEvent, error)
}

// SnowflakeConfig holds warehouse connection settings for the raw
// contact-event source table.
type SnowflakeConfig struct {
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Warehouse string `yaml:"warehouse"`
	Table     string `yaml:"table"`
}

// S3Config identifies the CSV export object and the credentials used to
// fetch it. AccessKeyID/SecretAccessKey are optional; when empty the
// default credential chain (profile, instance role) applies.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	Region          string `yaml:"region"`
	Profile         string `yaml:"profile"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}
