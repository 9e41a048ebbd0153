package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Analysis AnalysisConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	Colored       bool
	IncludeCaller bool
}

// AnalysisConfig holds the detection and scoring thresholds that drive the
// forensic pipeline. These are startup constants, never read per-request:
// every value here is resolved once in Load and then carried immutably
// through the lifetime of the process.
type AnalysisConfig struct {
	MinCycleLength int
	MaxCycleLength int

	SmurfingMinEndpoints int
	SmurfingWindowHours  int

	ShellMinHops   int
	ShellMaxHops   int
	ShellMaxDegree int

	VelocityWindowHours int
	VelocityMinTx       int

	ScoreCycle      float64
	ScoreSmurfing   float64
	ScoreShell      float64
	ScoreVelocity   float64
	ScoreCentrality float64
	ScoreFPMerchant float64
	ScoreMin        float64
	ScoreMax        float64

	MerchantMinLifetimeDays    int
	MerchantAmountCVThreshold  float64
	MerchantSpacingCVThreshold float64

	CycleEnumerationWorkCap int
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// DefaultAnalysisConfig returns the thresholds mandated by the forensic
// scoring model, before any environment overrides are applied.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MinCycleLength: 3,
		MaxCycleLength: 5,

		SmurfingMinEndpoints: 10,
		SmurfingWindowHours:  72,

		ShellMinHops:   3,
		ShellMaxHops:   5,
		ShellMaxDegree: 3,

		VelocityWindowHours: 24,
		VelocityMinTx:       10,

		ScoreCycle:      40.0,
		ScoreSmurfing:   30.0,
		ScoreShell:      25.0,
		ScoreVelocity:   20.0,
		ScoreCentrality: 10.0,
		ScoreFPMerchant: -25.0,
		ScoreMin:        0.0,
		ScoreMax:        100.0,

		MerchantMinLifetimeDays:    30,
		MerchantAmountCVThreshold:  0.30,
		MerchantSpacingCVThreshold: 0.50,

		CycleEnumerationWorkCap: 2_000_000,
	}
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			Colored:       parseBoolWithDefault("LOG_COLOR", false),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
		Analysis: DefaultAnalysisConfig(),
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if v := os.Getenv("SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.IdleTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", true)
	cfg.HTTP.AllowedOriginsCSV = os.Getenv("SERVER_ALLOWED_ORIGINS")

	if v := os.Getenv("ANALYSIS_CYCLE_ENUMERATION_WORK_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Analysis.CycleEnumerationWorkCap = n
		} else {
			return Config{}, fmt.Errorf("invalid ANALYSIS_CYCLE_ENUMERATION_WORK_CAP: %q", v)
		}
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
