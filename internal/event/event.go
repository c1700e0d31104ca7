// Package event reads the GitHub event payload that triggered a workload
// check and extracts the issue it refers to.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to envelope errors.
const (
	TextCodePathMissing  = "EVENT_PATH_MISSING"
	TextCodeUnreadable   = "EVENT_UNREADABLE"
	TextCodeMalformed    = "EVENT_MALFORMED"
	TextCodeIssueMissing = "EVENT_ISSUE_MISSING"
)

var (
	// ErrNoEventPath is returned when no event file was configured.
	ErrNoEventPath = errors.New("No event path!")
	// ErrMissingIssueBody is returned when the payload has no issue or the
	// issue has no body.
	ErrMissingIssueBody = errors.New("event payload has no issue body")
)

// Issue is the subset of the GitHub issue object the check needs.
type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

type payload struct {
	Issue *struct {
		Number  int     `json:"number"`
		Title   string  `json:"title"`
		Body    *string `json:"body"`
		HTMLURL string  `json:"html_url"`
	} `json:"issue"`
}

// Read loads and decodes the event file at path.
func Read(path string) (Issue, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Issue{}, goerrors.Wrap(ErrNoEventPath, goerrors.CategoryBadInput, "event path is required").
			WithTextCode(TextCodePathMissing)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Issue{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "read event file").
			WithTextCode(TextCodeUnreadable).
			WithMetadata(map[string]any{"path": path})
	}
	issue, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Issue{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "decode event file").
			WithMetadata(map[string]any{"path": path})
	}
	return issue, nil
}

// Decode reads an event payload from r.
func Decode(r io.Reader) (Issue, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Issue{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "event payload is not valid JSON").
			WithTextCode(TextCodeMalformed)
	}
	if p.Issue == nil || p.Issue.Body == nil {
		return Issue{}, goerrors.Wrap(ErrMissingIssueBody, goerrors.CategoryBadInput, "event payload has no issue").
			WithTextCode(TextCodeIssueMissing)
	}
	return Issue{
		Number:  p.Issue.Number,
		Title:   p.Issue.Title,
		Body:    *p.Issue.Body,
		HTMLURL: p.Issue.HTMLURL,
	}, nil
}

// IsEnvelopeError reports whether err was produced while reading the event.
func IsEnvelopeError(err error) bool {
	var e *goerrors.Error
	if !goerrors.As(err, &e) {
		return false
	}
	return strings.HasPrefix(e.TextCode, "EVENT_")
}
