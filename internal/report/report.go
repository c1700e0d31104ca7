// Package report renders submission validation errors as a GitHub Actions
// step output that later steps post back on the issue.
package report

import (
	"io"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-workload/internal/submission"
)

// OutputName is the step output the report is written to.
const OutputName = "error_body"

// TextCodeWriteFailed tags errors raised while writing the report.
const TextCodeWriteFailed = "REPORT_WRITE_FAILED"

const delimiter = "EOF"

// Body renders messages as a caution alert with one bullet per message.
func Body(messages []string) string {
	var b strings.Builder
	b.WriteString("> [!CAUTION]\n> ### Errors\n\n")
	for i, message := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("* ")
		b.WriteString(message)
	}
	return b.String()
}

// Format wraps Body in a multiline output assignment.
func Format(messages []string) string {
	return OutputName + "<<" + delimiter + "\n" + Body(messages) + "\n" + delimiter
}

// Write reports err to w when it is a submission validation error and returns
// err unchanged. Other errors are returned without writing. A failed write
// replaces err.
func Write(w io.Writer, err error) error {
	if err == nil || !submission.IsValidationError(err) {
		return err
	}
	if w == nil {
		return goerrors.New("report writer is not configured", goerrors.CategoryExternal).
			WithTextCode(TextCodeWriteFailed)
	}
	if _, writeErr := io.WriteString(w, Format(submission.Messages(err))); writeErr != nil {
		return goerrors.Wrap(writeErr, goerrors.CategoryExternal, "write error report").
			WithTextCode(TextCodeWriteFailed)
	}
	return err
}

// IsWriteFailure reports whether err is a report write failure.
func IsWriteFailure(err error) bool {
	var e *goerrors.Error
	return goerrors.As(err, &e) && e.TextCode == TextCodeWriteFailed
}
