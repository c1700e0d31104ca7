package issuecmd

import (
	"context"
	"io"
	"os"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-workload/internal/commands"
	"github.com/goliatone/go-workload/internal/event"
	"github.com/goliatone/go-workload/internal/identity"
	"github.com/goliatone/go-workload/internal/logging"
	"github.com/goliatone/go-workload/internal/report"
	"github.com/goliatone/go-workload/internal/submission"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

const checkOperation = "issue.check"

var _ command.Commander[CheckIssueCommand] = (*CheckIssueHandler)(nil)

// Parser turns an issue body into a Submission.
type Parser interface {
	Parse(body string) (*submission.Submission, error)
}

// EventReader loads the issue from an event payload path.
type EventReader func(path string) (event.Issue, error)

// OutputOpener opens the report destination.
type OutputOpener func(path string) (io.WriteCloser, error)

// AcceptedFunc observes accepted submissions.
type AcceptedFunc func(ctx context.Context, issue event.Issue, sub *submission.Submission)

// Option customises a CheckIssueHandler.
type Option func(*CheckIssueHandler)

// WithEventReader replaces event.Read.
func WithEventReader(reader EventReader) Option {
	return func(h *CheckIssueHandler) {
		if reader != nil {
			h.readEvent = reader
		}
	}
}

// WithOutputOpener replaces the append-mode file opener.
func WithOutputOpener(opener OutputOpener) Option {
	return func(h *CheckIssueHandler) {
		if opener != nil {
			h.openOutput = opener
		}
	}
}

// WithAcceptedHook registers a callback for accepted submissions.
func WithAcceptedHook(fn AcceptedFunc) Option {
	return func(h *CheckIssueHandler) {
		h.accepted = fn
	}
}

// WithHandlerOptions forwards options to the underlying commands.Handler.
func WithHandlerOptions(opts ...commands.HandlerOption[CheckIssueCommand]) Option {
	return func(h *CheckIssueHandler) {
		h.handlerOpts = append(h.handlerOpts, opts...)
	}
}

// CheckIssueHandler runs CheckIssueCommand.
type CheckIssueHandler struct {
	parser      Parser
	logger      interfaces.Logger
	readEvent   EventReader
	openOutput  OutputOpener
	accepted    AcceptedFunc
	handlerOpts []commands.HandlerOption[CheckIssueCommand]
	inner       *commands.Handler[CheckIssueCommand]
}

// NewCheckIssueHandler builds a handler around parser.
func NewCheckIssueHandler(parser Parser, logger interfaces.Logger, opts ...Option) *CheckIssueHandler {
	if parser == nil {
		parser = submission.NewParser()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	h := &CheckIssueHandler{
		parser:     parser,
		logger:     logger,
		readEvent:  event.Read,
		openOutput: OpenAppend,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	handlerOpts := []commands.HandlerOption[CheckIssueCommand]{
		commands.WithLogger[CheckIssueCommand](logger),
		commands.WithOperation[CheckIssueCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckIssueCommand) map[string]any {
			fields := map[string]any{"output_path": msg.OutputPath}
			if path := strings.TrimSpace(msg.EventPath); path != "" {
				fields["event_path"] = path
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckIssueCommand](nil)),
	}
	h.inner = commands.NewHandler(h.check, append(handlerOpts, h.handlerOpts...)...)
	return h
}

// Execute satisfies command.Commander[CheckIssueCommand].
func (h *CheckIssueHandler) Execute(ctx context.Context, msg CheckIssueCommand) error {
	return h.inner.Execute(ctx, msg)
}

func (h *CheckIssueHandler) check(ctx context.Context, msg CheckIssueCommand) error {
	issue, err := h.readEvent(msg.EventPath)
	if err != nil {
		return err
	}

	runID := identity.RunUUID(issue.Number, issue.Body)
	logger := logging.WithIssueContext(h.logger.WithContext(ctx), issue.Number, issue.HTMLURL, runID.String())

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sub, err := h.parser.Parse(issue.Body)
	if err == nil {
		logging.WithFields(logger, map[string]any{
			"submission_id": identity.SubmissionUUID(issue.Number, sub.Date(), string(sub.Type())).String(),
			"type":          string(sub.Type()),
			"date":          sub.Date(),
			"projects":      len(sub.Projects()),
			"total_load":    sub.TotalLoad(),
		}).Info("issue.check.accepted")
		if h.accepted != nil {
			h.accepted(ctx, issue, sub)
		}
		return nil
	}

	if !submission.IsValidationError(err) {
		logging.WithError(logger, err).Warn("issue.check.unprocessable")
		return err
	}

	messages := submission.Messages(err)
	logging.WithFields(logger, map[string]any{
		"error_count": len(messages),
	}).Warn("issue.check.rejected")

	return h.writeReport(msg.OutputPath, err)
}

// writeReport returns the validation error, or the write failure when the
// report could not be written.
func (h *CheckIssueHandler) writeReport(path string, validationErr error) error {
	out, err := h.openOutput(path)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "open report output").
			WithTextCode(report.TextCodeWriteFailed).
			WithMetadata(map[string]any{"path": path})
	}
	result := report.Write(out, validationErr)
	if closeErr := out.Close(); closeErr != nil && !report.IsWriteFailure(result) {
		return goerrors.Wrap(closeErr, goerrors.CategoryExternal, "close report output").
			WithTextCode(report.TextCodeWriteFailed)
	}
	return result
}

// OpenAppend opens path for appending, creating it when missing. Step
// output files are shared by every command of a step.
func OpenAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
