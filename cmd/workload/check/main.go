package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/goliatone/go-workload"
	"github.com/goliatone/go-workload/internal/di"
)

var moduleBuilder = func(cfg workload.Config, opts ...di.Option) (checker, error) {
	return workload.New(cfg, opts...)
}

type checker interface {
	CheckIssue(ctx context.Context, cmd workload.CheckIssueCommand) error
}

func main() {
	if err := runCheck(os.Args[1:], os.Getenv, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "workload check: %v\n", err)
		os.Exit(1)
	}
}

func runCheck(args []string, getenv func(string) string, logOut io.Writer) error {
	defaults := workload.DefaultConfig()

	fs := flag.NewFlagSet("workload-check", flag.ContinueOnError)
	fs.SetOutput(logOut)
	eventPath := fs.String("event-path", "", "Path to the GitHub event payload (defaults to $EVENT_PATH)")
	output := fs.String("output", "", "Step output file receiving the error report (defaults to $GITHUB_OUTPUT)")
	segmenter := fs.String("segmenter", defaults.Parser.Segmenter, "Segmenter strategy: split or goldmark")
	timezone := fs.String("timezone", defaults.Parser.Timezone, "IANA zone submission dates are anchored in")
	weekly := fs.Float64("weekly-max-load", defaults.Parser.WeeklyMaxLoad, "Maximum dev.days for weekly submissions")
	daily := fs.Float64("daily-max-load", defaults.Parser.DailyMaxLoad, "Maximum dev.days for daily submissions")
	logLevel := fs.String("log-level", defaults.Logging.Level, "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format (console: text, actions; gologger: json, console, pretty)")
	logProvider := fs.String("log-provider", defaults.Logging.Provider, "Log provider: console or gologger")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaults
	cfg.Parser.Segmenter = *segmenter
	cfg.Parser.Timezone = *timezone
	cfg.Parser.WeeklyMaxLoad = *weekly
	cfg.Parser.DailyMaxLoad = *daily
	cfg.Event.Path = firstNonEmpty(*eventPath, getenv("EVENT_PATH"))
	cfg.Event.OutputPath = firstNonEmpty(*output, getenv("GITHUB_OUTPUT"))
	cfg.Features.Logger = true
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	if cfg.Logging.Format == "" && strings.EqualFold(cfg.Logging.Provider, "console") && getenv("GITHUB_ACTIONS") == "true" {
		cfg.Logging.Format = "actions"
	}

	module, err := moduleBuilder(cfg, di.WithLogWriter(logOut))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	return module.CheckIssue(context.Background(), workload.CheckIssueCommand{
		EventPath:  cfg.Event.Path,
		OutputPath: cfg.Event.OutputPath,
	})
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
