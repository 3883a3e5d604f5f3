package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Gas table sources besides a file path.
const (
	GasSourceEmbedded = "embedded"
	GasSourcePostgres = "postgres"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	TLSCertFile     string
	TLSKeyFile      string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatabaseURL string
	TokenKey    string

	// GasSource is "embedded", "postgres" or a path to a .csv/.xlsx table.
	GasSource string
	TempDir   string

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigin     string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS: must be a positive number")
	}
	burst, err := strconv.Atoi(envOrDefault("RATE_LIMIT_BURST", "10"))
	if err != nil || burst < 1 {
		return nil, errors.New("invalid RATE_LIMIT_BURST: must be a positive integer")
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		TLSCertFile:     os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:      os.Getenv("TLS_KEY_FILE"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TokenKey:        os.Getenv("TOKEN_KEY"),
		GasSource:       envOrDefault("GAS_SOURCE", GasSourceEmbedded),
		TempDir:         envOrDefault("TEMP_DIR", os.TempDir()),
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		CORSOrigin:      envOrDefault("CORS_ORIGIN", "*"),
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if err := validateGasSource(cfg.GasSource); err != nil {
		return nil, err
	}
	if cfg.GasSource == GasSourcePostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("GAS_SOURCE=postgres requires DATABASE_URL")
	}

	return cfg, nil
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func validateGasSource(src string) error {
	switch src {
	case GasSourceEmbedded, GasSourcePostgres:
		return nil
	}
	ext := strings.ToLower(src)
	if strings.HasSuffix(ext, ".csv") || strings.HasSuffix(ext, ".xlsx") {
		return nil
	}
	return fmt.Errorf("invalid GAS_SOURCE %q: want %s, %s or a .csv/.xlsx path", src, GasSourceEmbedded, GasSourcePostgres)
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
