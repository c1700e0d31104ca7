package di

import (
	"io"
	"strings"

	"github.com/goliatone/go-workload/internal/commands"
	issuecmd "github.com/goliatone/go-workload/internal/commands/issue"
	"github.com/goliatone/go-workload/internal/logging"
	"github.com/goliatone/go-workload/internal/logging/console"
	"github.com/goliatone/go-workload/internal/logging/gologger"
	"github.com/goliatone/go-workload/internal/markdown"
	"github.com/goliatone/go-workload/internal/runtimeconfig"
	"github.com/goliatone/go-workload/internal/submission"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

// Container wires the parser, loggers and command handlers from a Config.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	segmenter    interfaces.Segmenter
	parser       *submission.Parser
	checkHandler *issuecmd.CheckIssueHandler
	checkOpts    []issuecmd.Option
}

// Option customises the container.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stdout.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithSegmenter overrides the strategy selected by Config.Parser.Segmenter.
func WithSegmenter(segmenter interfaces.Segmenter) Option {
	return func(c *Container) {
		if segmenter != nil {
			c.segmenter = segmenter
		}
	}
}

// WithCheckIssueOptions forwards options to the check-issue handler.
func WithCheckIssueOptions(opts ...issuecmd.Option) Option {
	return func(c *Container) {
		c.checkOpts = append(c.checkOpts, opts...)
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureParser(); err != nil {
		return nil, err
	}

	c.checkHandler = issuecmd.NewCheckIssueHandler(
		c.parser,
		commands.CommandLogger(c.loggerProvider, "issue"),
		c.checkOpts...,
	)

	logging.WithFields(logging.ModuleLogger(c.loggerProvider, ""), map[string]any{
		"segmenter": c.cfg.Parser.Segmenter,
		"timezone":  c.cfg.Parser.Timezone,
	}).Debug("container.configured")

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.cfg.Features.Logger {
		return nil
	}
	switch normalized(c.cfg.Logging.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.cfg.Logging.Level,
			Format:    c.cfg.Logging.Format,
			AddSource: c.cfg.Logging.AddSource,
			Focus:     c.cfg.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.logWriter, Format: c.cfg.Logging.Format}
		if level, ok := console.ParseLevel(c.cfg.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureParser() error {
	if c.segmenter == nil {
		segmenter, ok := markdown.NewSegmenter(c.cfg.Parser.Segmenter, c.cfg.Parser.Extensions...)
		if !ok {
			return runtimeconfig.ErrSegmenterUnknown
		}
		c.segmenter = segmenter
	}
	loc, err := c.cfg.Parser.Location()
	if err != nil {
		return err
	}
	c.parser = submission.NewParser(
		submission.WithSegmenter(c.segmenter),
		submission.WithLocation(loc),
		submission.WithLoadCeilings(c.cfg.Parser.WeeklyMaxLoad, c.cfg.Parser.DailyMaxLoad),
	)
	return nil
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config { return c.cfg }

// LoggerProvider returns the configured provider, or nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Logger returns the logger for module.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Parser returns the configured submission parser.
func (c *Container) Parser() *submission.Parser { return c.parser }

// CheckIssueHandler returns the check-issue command handler.
func (c *Container) CheckIssueHandler() *issuecmd.CheckIssueHandler { return c.checkHandler }

func normalized(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
