package submission

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to submission errors.
const (
	TextCodeRulesFailed    = "SUBMISSION_RULES_FAILED"
	TextCodeSchemaFailed   = "SUBMISSION_SCHEMA_FAILED"
	TextCodeMalformedIssue = "ISSUE_MALFORMED"
)

// ErrMalformedIssue reports an issue body with fewer sections than the form
// defines. It is an envelope problem, not a validation failure.
var ErrMalformedIssue = errors.New("submission: malformed issue body")

const invalidSubmissionMessage = "Invalid submission"

func newMalformedIssue(found int) error {
	return goerrors.Wrap(ErrMalformedIssue, goerrors.CategoryBadInput, "issue body does not follow the workload template").
		WithTextCode(TextCodeMalformedIssue).
		WithMetadata(map[string]any{
			"expected_sections": SlotCount,
			"found_sections":    found,
		})
}

func newRuleViolation(fields goerrors.ValidationErrors) error {
	return goerrors.NewValidation(invalidSubmissionMessage, fields...).
		WithTextCode(TextCodeRulesFailed)
}

func newSchemaViolation(fields goerrors.ValidationErrors) error {
	return goerrors.NewValidation(invalidSubmissionMessage, fields...).
		WithTextCode(TextCodeSchemaFailed)
}

// Messages returns the human-readable messages of a rule or schema
// violation in detection order. Other errors yield nil.
func Messages(err error) []string {
	e, ok := violation(err)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.ValidationErrors))
	for _, field := range e.ValidationErrors {
		out = append(out, field.Message)
	}
	return out
}

// IsValidationError reports whether err is a rule or schema violation.
func IsValidationError(err error) bool {
	_, ok := violation(err)
	return ok
}

// IsRuleViolation reports whether err came from the business rules.
func IsRuleViolation(err error) bool {
	e, ok := violation(err)
	return ok && e.TextCode == TextCodeRulesFailed
}

// IsSchemaViolation reports whether err came from the schema pass.
func IsSchemaViolation(err error) bool {
	e, ok := violation(err)
	return ok && e.TextCode == TextCodeSchemaFailed
}

func violation(err error) (*goerrors.Error, bool) {
	var e *goerrors.Error
	if !goerrors.As(err, &e) {
		return nil, false
	}
	if e.Category != goerrors.CategoryValidation {
		return nil, false
	}
	switch e.TextCode {
	case TextCodeRulesFailed, TextCodeSchemaFailed:
		return e, true
	}
	return nil, false
}
