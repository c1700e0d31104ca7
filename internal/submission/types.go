package submission

import (
	"encoding/json"
	"time"
)

// Type is the reporting period of a submission.
type Type string

const (
	TypeWeekly Type = "weekly"
	TypeDaily  Type = "daily"
)

// SupportProjectID identifies the synthetic allocation that carries
// unplanned support work.
const SupportProjectID = "support"

// ProjectAllocation is the effort, in dev-days, spent on one project or on
// the support bucket.
type ProjectAllocation struct {
	ID   string  `json:"id"`
	Load float64 `json:"load"`
}

// Record is the wire shape of a submission. It is what the schema layer
// validates and what a Submission marshals to.
type Record struct {
	Date     string              `json:"date"`
	Type     string              `json:"type"`
	Product  *string             `json:"product"`
	Projects []ProjectAllocation `json:"projects"`
}

// Submission is a validated workload report. Values are only produced by
// Parse and Build and never change afterwards; accessors return copies.
type Submission struct {
	date     string
	kind     Type
	product  *string
	projects []ProjectAllocation
}

func newSubmission(record Record) *Submission {
	s := &Submission{
		date:     record.Date,
		kind:     Type(record.Type),
		projects: cloneAllocations(record.Projects),
	}
	if record.Product != nil {
		product := *record.Product
		s.product = &product
	}
	return s
}

// Date returns the ISO-8601 UTC instant, e.g. "2024-08-05T00:00:00.000Z".
func (s *Submission) Date() string { return s.date }

// Time parses Date. Submissions produced by Parse always parse.
func (s *Submission) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s.date)
}

// Type returns the lowercase reporting period.
func (s *Submission) Type() Type { return s.kind }

// Product returns the product name and whether one was given.
func (s *Submission) Product() (string, bool) {
	if s.product == nil {
		return "", false
	}
	return *s.product, true
}

// Projects returns the retained allocations in form order, support first.
func (s *Submission) Projects() []ProjectAllocation {
	return cloneAllocations(s.projects)
}

// TotalLoad sums the load of every retained allocation.
func (s *Submission) TotalLoad() float64 {
	return totalLoad(s.projects)
}

// Record returns the wire shape of the submission.
func (s *Submission) Record() Record {
	record := Record{
		Date:     s.date,
		Type:     string(s.kind),
		Projects: cloneAllocations(s.projects),
	}
	if s.product != nil {
		product := *s.product
		record.Product = &product
	}
	return record
}

// MarshalJSON encodes the submission as its Record.
func (s *Submission) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

func cloneAllocations(in []ProjectAllocation) []ProjectAllocation {
	out := make([]ProjectAllocation, len(in))
	copy(out, in)
	return out
}

func totalLoad(projects []ProjectAllocation) float64 {
	total := 0.0
	for _, project := range projects {
		total += project.Load
	}
	return total
}
