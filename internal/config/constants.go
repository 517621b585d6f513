package config

import "time"

// Default configuration values
const (
	DefaultPort           = 8080
	DefaultEnvironment    = "dev"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultLogDir         = "logs"
	DefaultDBName         = "packvault"
	DefaultDBMaxConns     = 25
	DefaultDeadLetterPath = "logs/dead_letter_events.jsonl"
)

// Default timeouts
const (
	DefaultDBMaxIdleTime    = 30 * time.Minute
	DefaultDBMaxLifetime    = time.Hour
	DefaultHTTPReadTimeout  = 10 * time.Second
	DefaultHTTPWriteTimeout = 30 * time.Second
	DefaultShutdownTimeout  = 15 * time.Second
)
