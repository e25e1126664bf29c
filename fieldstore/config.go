package fieldstore

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	// DefaultColumnsPerDataType is how many numbered columns each data type
	// has per content type unless configured otherwise.
	DefaultColumnsPerDataType = 25

	DefaultDSN = "fields.db"

	EnvDSN                = "FIELDSTORE_DB"
	EnvColumnsPerDataType = "FIELDSTORE_COLUMNS_PER_DATATYPE"
	EnvLogLevel           = "FIELDSTORE_LOG_LEVEL"
)

// Config is passed explicitly to the store; there is no process-wide state.
type Config struct {
	// DSN is handed to the sqlite3 driver as is.
	DSN string
	// ColumnsPerDataType caps the numbered columns of one data type on one
	// content type.
	ColumnsPerDataType int
	Logger             zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		DSN:                DefaultDSN,
		ColumnsPerDataType: DefaultColumnsPerDataType,
		Logger:             zerolog.Nop(),
	}
}

// ConfigFromEnv is DefaultConfig overridden by FIELDSTORE_* variables.
// Malformed numbers fall back to the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.DSN = GetEnvOrDefault(EnvDSN, cfg.DSN)
	if n, err := strconv.Atoi(GetEnvOrDefault(EnvColumnsPerDataType, "")); err == nil && n > 0 {
		cfg.ColumnsPerDataType = n
	}
	return cfg
}

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func (c Config) columns() int {
	if c.ColumnsPerDataType <= 0 {
		return DefaultColumnsPerDataType
	}
	return c.ColumnsPerDataType
}
