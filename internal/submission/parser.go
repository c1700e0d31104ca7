package submission

import (
	"time"

	"github.com/goliatone/go-workload/internal/markdown"
	"github.com/goliatone/go-workload/pkg/interfaces"
)

// Default load ceilings in dev-days.
const (
	DefaultWeeklyMaxLoad = 5.0
	DefaultDailyMaxLoad  = 1.0
)

// Parser turns issue bodies into Submissions. A Parser holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	segmenter interfaces.Segmenter
	location  *time.Location
	ceilings  map[Type]float64
}

// Option configures a Parser.
type Option func(*Parser)

// WithSegmenter replaces the default split segmenter.
func WithSegmenter(segmenter interfaces.Segmenter) Option {
	return func(p *Parser) {
		if segmenter != nil {
			p.segmenter = segmenter
		}
	}
}

// WithLocation sets the civil timezone submission dates are anchored in.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithLoadCeilings overrides the weekly and daily ceilings. Non-positive
// values keep the defaults.
func WithLoadCeilings(weekly, daily float64) Option {
	return func(p *Parser) {
		if weekly > 0 {
			p.ceilings[TypeWeekly] = weekly
		}
		if daily > 0 {
			p.ceilings[TypeDaily] = daily
		}
	}
}

// NewParser builds a Parser using the split segmenter, UTC and the default
// ceilings unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		segmenter: markdown.SplitSegmenter{},
		location:  time.UTC,
		ceilings: map[Type]float64{
			TypeWeekly: DefaultWeeklyMaxLoad,
			TypeDaily:  DefaultDailyMaxLoad,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Ceiling returns the load ceiling for kind.
func (p *Parser) Ceiling(kind Type) (float64, bool) {
	v, ok := p.ceilings[kind]
	return v, ok
}

// Parse segments body, applies the business rules and the schema pass.
//
// Errors are one of: ErrMalformedIssue when the body has fewer sections
// than the form, a rule violation listing every failed rule, or a schema
// violation. Use Messages to read the list.
func (p *Parser) Parse(body string) (*Submission, error) {
	segments := p.segmenter.Segment(body)
	answers, err := mapAnswers(segments)
	if err != nil {
		return nil, err
	}

	d := p.newDraft(answers)
	if err := p.applyRules(d); err != nil {
		return nil, err
	}

	return Build(d.record())
}

func (d *draft) record() Record {
	record := Record{
		Date:     isoInstant(d.date),
		Type:     string(d.kind),
		Projects: cloneAllocations(d.projects),
	}
	if product := d.answers.get(SlotProduct); Answered(product) {
		record.Product = &product
	}
	return record
}

var defaultParser = NewParser()

// Parse parses body with the default Parser.
func Parse(body string) (*Submission, error) {
	return defaultParser.Parse(body)
}
