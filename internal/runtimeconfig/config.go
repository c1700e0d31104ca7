package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrSegmenterUnknown        = errors.New("workload config: segmenter strategy is invalid")
	ErrTimezoneInvalid         = errors.New("workload config: timezone is invalid")
	ErrLoadCeilingInvalid      = errors.New("workload config: load ceiling must be positive")
	ErrLoggingProviderRequired = errors.New("workload config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("workload config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("workload config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("workload config: logging format is invalid")
)

// Segmenter strategies.
const (
	SegmenterSplit    = "split"
	SegmenterGoldmark = "goldmark"
)

// Config aggregates the settings of the issue checker.
type Config struct {
	Parser   ParserConfig
	Event    EventConfig
	Logging  LoggingConfig
	Features Features
}

// ParserConfig controls how issue bodies are segmented and validated.
type ParserConfig struct {
	// Segmenter is "split" or "goldmark".
	Segmenter string
	// Extensions lists goldmark extensions for the goldmark segmenter.
	Extensions []string
	// Timezone is the IANA zone submission dates are anchored in.
	Timezone      string
	WeeklyMaxLoad float64
	DailyMaxLoad  float64
}

// EventConfig locates the event payload and the step output file.
type EventConfig struct {
	Path       string
	OutputPath string
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the issue form was designed for.
func DefaultConfig() Config {
	return Config{
		Parser: ParserConfig{
			Segmenter:     SegmenterSplit,
			Timezone:      "UTC",
			WeeklyMaxLoad: 5,
			DailyMaxLoad:  1,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Location resolves Parser.Timezone. An empty zone is UTC.
func (cfg ParserConfig) Location() (*time.Location, error) {
	zone := strings.TrimSpace(cfg.Timezone)
	if zone == "" || strings.EqualFold(zone, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTimezoneInvalid, zone)
	}
	return loc, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Parser.Segmenter) {
	case "", SegmenterSplit, SegmenterGoldmark:
	default:
		return fmt.Errorf("%w: %s", ErrSegmenterUnknown, cfg.Parser.Segmenter)
	}
	if _, err := cfg.Parser.Location(); err != nil {
		return err
	}
	if cfg.Parser.WeeklyMaxLoad <= 0 {
		return fmt.Errorf("%w: weekly", ErrLoadCeilingInvalid)
	}
	if cfg.Parser.DailyMaxLoad <= 0 {
		return fmt.Errorf("%w: daily", ErrLoadCeilingInvalid)
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = normalize(format)
	if provider == "console" {
		return format == "text" || format == "actions"
	}
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
