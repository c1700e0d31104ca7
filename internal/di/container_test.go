package di_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-workload/internal/di"
	"github.com/goliatone/go-workload/internal/logging/gologger"
	"github.com/goliatone/go-workload/internal/markdown"
	"github.com/goliatone/go-workload/internal/runtimeconfig"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

const weeklyBody = "### Date\n\n05/08/2024\n\n### Type\n\nWeekly\n\n### Product\n\nBilling\n\n" +
	"### Support\n\n2\n\n### P1\n\nPRJ-101\n\n### L1\n\n2\n\n### P2\n\nPRJ-204\n\n### L2\n\n2\n\n" +
	"### P3\n\n_No response_\n\n### L3\n\nNone"

type recordingProvider struct {
	names []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Trace(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Fatal(string, ...any) {}

func (n nopLogger) WithContext(context.Context) interfaces.Logger { return n }

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Parser.Segmenter = "regex"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrSegmenterUnknown) {
		t.Fatalf("expected ErrSegmenterUnknown, got %v", err)
	}
}

func TestContainerAppliesParserConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Parser.WeeklyMaxLoad = 7

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if ceiling, _ := container.Parser().Ceiling("weekly"); ceiling != 7 {
		t.Fatalf("expected weekly ceiling 7, got %v", ceiling)
	}
	if _, err := container.Parser().Parse(weeklyBody); err != nil {
		t.Fatalf("expected 6 dev.days to pass with ceiling 7: %v", err)
	}
	if container.CheckIssueHandler() == nil {
		t.Fatalf("expected check-issue handler")
	}
	if container.LoggerProvider() != nil {
		t.Fatalf("expected no provider when logging is disabled")
	}
}

func TestContainerUsesGoldmarkSegmenter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Parser.Segmenter = runtimeconfig.SegmenterGoldmark

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, err := container.Parser().Parse(weeklyBody); err == nil {
		t.Fatalf("expected weekly ceiling error")
	}
}

func TestContainerConsoleLoggerWritesToWriter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "actions"

	var buf bytes.Buffer
	if _, err := di.NewContainer(cfg, di.WithLogWriter(&buf)); err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if !strings.Contains(buf.String(), "::debug::container.configured") {
		t.Fatalf("expected configuration entry, got %q", buf.String())
	}
}

func TestContainerUsesGoLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

func TestContainerOverrides(t *testing.T) {
	provider := &recordingProvider{}
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(),
		di.WithLoggerProvider(provider),
		di.WithSegmenter(markdown.NewGoldmarkSegmenter()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.LoggerProvider() != provider {
		t.Fatalf("expected injected provider")
	}
	want := []string{"workload.commands.issue", "workload"}
	if len(provider.names) != 2 || provider.names[0] != want[0] || provider.names[1] != want[1] {
		t.Fatalf("expected loggers %v, got %v", want, provider.names)
	}
}
