package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/bizledger/constants"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Local    LocalConfig
	Server   ServerConfig
	Report   ReportConfig
}

// DatabaseConfig holds the durable store configuration. An empty DSN means
// the process runs against the local buffer only.
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// LocalConfig holds the local buffer (SQLite) configuration.
type LocalConfig struct {
	Path string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// ReportConfig holds the letterhead and currency used by exported reports.
type ReportConfig struct {
	CurrencyCode   string
	Locale         string
	CompanyName    string
	CompanyTagline string
	CompanyAddress string
	CompanyContact string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Local: LocalConfig{
			Path: getEnv("LOCAL_DB_PATH", "bizledger-local.db"),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		Report: ReportConfig{
			CurrencyCode:   getEnv("CURRENCY_CODE", constants.DefaultCurrency),
			Locale:         getEnv("REPORT_LOCALE", "en-KE"),
			CompanyName:    getEnv("COMPANY_NAME", "Charge24 Limited"),
			CompanyTagline: getEnv("COMPANY_TAGLINE", "RECHARGE YOUR BRAND"),
			CompanyAddress: getEnv("COMPANY_ADDRESS", "Ngong Lane Plaza 4th Floor - Ngong Rd."),
			CompanyContact: getEnv("COMPANY_CONTACT", "020 2577 111 | 0792 041 626;info@charge24.ke | www.charge24.africa"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// HasDurableStore reports whether a durable database is configured.
func (c *Config) HasDurableStore() bool {
	return c.Database.DSN != ""
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Local.Path == "" {
		return NewAppError("CONFIG_ERROR", "LOCAL_DB_PATH is required", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	if len(c.Report.CurrencyCode) != 3 {
		return NewAppError("CONFIG_ERROR", "CURRENCY_CODE must be a 3-letter code", ErrInvalidInput)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return NewAppError("CONFIG_ERROR", "DB_MIN_CONNS must not exceed DB_MAX_CONNS", ErrInvalidInput)
	}
	return nil
}
