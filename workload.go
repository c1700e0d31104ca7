package workload

import (
	"context"
	"errors"

	issuecmd "github.com/goliatone/go-workload/internal/commands/issue"
	"github.com/goliatone/go-workload/internal/di"
	"github.com/goliatone/go-workload/internal/event"
	"github.com/goliatone/go-workload/internal/submission"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

// Submission exports the validated workload record.
type Submission = submission.Submission

// Record exports the candidate record shape accepted by Build.
type Record = submission.Record

// ProjectAllocation exports a single project or support allocation.
type ProjectAllocation = submission.ProjectAllocation

// SubmissionType exports the weekly/daily submission kind.
type SubmissionType = submission.Type

// Parser exports the configurable submission parser.
type Parser = submission.Parser

// Issue exports the issue decoded from an event payload.
type Issue = event.Issue

// CheckIssueCommand exports the check-issue command message.
type CheckIssueCommand = issuecmd.CheckIssueCommand

const (
	TypeWeekly = submission.TypeWeekly
	TypeDaily  = submission.TypeDaily
)

// Module is the top level façade over the configured parser and commands.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Parser returns the configured submission parser.
func (m *Module) Parser() *Parser {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Parser()
}

// Logger returns the module logger for the given submodule name.
func (m *Module) Logger(module string) interfaces.Logger {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Logger(module)
}

// Parse parses body with the configured parser.
func (m *Module) Parse(body string) (*Submission, error) {
	return m.Parser().Parse(body)
}

// CheckIssue runs the check-issue command: it reads the event at
// cmd.EventPath, validates the issue body and appends an error report to
// cmd.OutputPath when validation fails.
func (m *Module) CheckIssue(ctx context.Context, cmd CheckIssueCommand) error {
	return m.container.CheckIssueHandler().Execute(ctx, cmd)
}

// Parse parses body with the default split segmenter, UTC dates and the
// default load ceilings.
func Parse(body string) (*Submission, error) {
	return submission.Parse(body)
}

// Build validates a candidate record against the submission schema.
func Build(payload any) (*Submission, error) {
	return submission.Build(payload)
}

// Messages returns the human readable messages carried by a validation error.
func Messages(err error) []string {
	return submission.Messages(err)
}

// IsValidationError reports whether err is a rule or schema violation.
func IsValidationError(err error) bool {
	return submission.IsValidationError(err)
}

// IsEnvelopeError reports whether err describes a missing or malformed event.
func IsEnvelopeError(err error) bool {
	return event.IsEnvelopeError(err) || errors.Is(err, submission.ErrMalformedIssue)
}
