package logging

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-workload/pkg/interfaces"
)

const (
	rootModule     = "workload"
	issueModule    = "workload.issue"
	commandsModule = "workload.commands"
)

const (
	fieldIssueNumber = "issue_number"
	fieldIssueURL    = "issue_url"
	fieldRunID       = "run_id"
)

// ModuleLogger returns the provider's logger for module tagged with a
// "module" field. A nil provider yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// IssueLogger is the namespace used while checking issues.
func IssueLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, issueModule)
}

// CommandLogger namespaces a command handler under workload.commands.
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+command)
}

// WithIssueContext adds the issue number, URL and run id. Zero and empty
// values are skipped.
func WithIssueContext(logger interfaces.Logger, number int, url, runID string) interfaces.Logger {
	fields := map[string]any{}
	if number > 0 {
		fields[fieldIssueNumber] = strconv.Itoa(number)
	}
	if trimmed := strings.TrimSpace(url); trimmed != "" {
		fields[fieldIssueURL] = trimmed
	}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
