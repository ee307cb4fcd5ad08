package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ignite/campaign-insights/internal/source"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pipeline and its serving surface.
type Config struct {
	Server    ServerConfig           `yaml:"server"`
	Database  DatabaseConfig         `yaml:"database"`
	Redis     RedisConfig            `yaml:"redis"`
	Source    SourceConfig           `yaml:"source"`
	Snowflake source.SnowflakeConfig `yaml:"snowflake"`
	S3        source.S3Config        `yaml:"s3"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the Postgres sink settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the report cache settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLHours int    `yaml:"ttl_hours"`
}

// TTL returns the cache expiry as a duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLHours) * time.Hour
}

// SourceConfig selects where the raw contact log comes from.
type SourceConfig struct {
	// Type is one of: snowflake, csv, s3.
	Type string `yaml:"type"`
	// Path is the local CSV path when Type is csv.
	Path string `yaml:"path"`
}

// Load reads and parses the configuration file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = "snowflake"
	}
	if cfg.Snowflake.Table == "" {
		cfg.Snowflake.Table = "RAW_CONTACT_EVENTS"
	}
	if cfg.Redis.TTLHours == 0 {
		cfg.Redis.TTLHours = 24
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, so secrets
// can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SOURCE_TYPE"); v != "" {
		cfg.Source.Type = v
	}
	if v := os.Getenv("SOURCE_CSV_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("SNOWFLAKE_ACCOUNT"); v != "" {
		cfg.Snowflake.Account = v
	}
	if v := os.Getenv("SNOWFLAKE_USER"); v != "" {
		cfg.Snowflake.User = v
	}
	if v := os.Getenv("SNOWFLAKE_PASSWORD"); v != "" {
		cfg.Snowflake.Password = v
	}
	if v := os.Getenv("SNOWFLAKE_DATABASE"); v != "" {
		cfg.Snowflake.Database = v
	}
	if v := os.Getenv("SNOWFLAKE_SCHEMA"); v != "" {
		cfg.Snowflake.Schema = v
	}
	if v := os.Getenv("SNOWFLAKE_WAREHOUSE"); v != "" {
		cfg.Snowflake.Warehouse = v
	}
	if v := os.Getenv("SNOWFLAKE_TABLE"); v != "" {
		cfg.Snowflake.Table = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("S3_KEY"); v != "" {
		cfg.S3.Key = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.S3.Region = v
	}

	return cfg, nil
}
