package workload

import (
	"github.com/goliatone/go-workload/internal/event"
	"github.com/goliatone/go-workload/internal/runtimeconfig"
	"github.com/goliatone/go-workload/internal/submission"
)

var (
	ErrSegmenterUnknown        = runtimeconfig.ErrSegmenterUnknown
	ErrTimezoneInvalid         = runtimeconfig.ErrTimezoneInvalid
	ErrLoadCeilingInvalid      = runtimeconfig.ErrLoadCeilingInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrNoEventPath             = event.ErrNoEventPath
	ErrMissingIssueBody        = event.ErrMissingIssueBody
	ErrMalformedIssue          = submission.ErrMalformedIssue
)

type (
	Config        = runtimeconfig.Config
	ParserConfig  = runtimeconfig.ParserConfig
	EventConfig   = runtimeconfig.EventConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
