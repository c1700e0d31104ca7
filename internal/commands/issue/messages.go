package issuecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const checkIssueMessageType = "workload.issue.check"

// CheckIssueCommand checks the issue referenced by an event payload and
// reports validation errors to a step output file.
type CheckIssueCommand struct {
	// EventPath is the GitHub event payload. An empty path surfaces as an
	// envelope error from the handler rather than a validation error.
	EventPath string `json:"event_path"`
	// OutputPath receives the error report. It is opened in append mode.
	OutputPath string `json:"output_path"`
}

// Type implements command.Message.
func (CheckIssueCommand) Type() string { return checkIssueMessageType }

// Validate requires an output path so failures can be reported.
func (cmd CheckIssueCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputPath, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("workload.issue.check.output_required", "output path is required")
			}
			return nil
		})),
	)
}
