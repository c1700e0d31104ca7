package submission

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// Rule messages. The ceiling templates receive the configured threshold.
const (
	msgDateMandatory  = "Date is mandatory"
	msgTypeMandatory  = "Type is mandatory"
	msgInvalidDate    = "Invalid date: %s"
	msgEmptyProjects  = "Invalid projects submission: submit at least 1 project or support"
	msgCeilingPattern = "%s load can have a maximum of {{.threshold}} dev.days, you entered: %s"
)

// draft is the state the rules inspect. It is assembled once from the
// answers and never mutated by a rule.
type draft struct {
	answers  answers
	kind     Type
	date     time.Time
	dateOK   bool
	projects []ProjectAllocation
	total    float64
}

func (p *Parser) newDraft(a answers) *draft {
	d := &draft{
		answers:  a,
		kind:     Type(strings.ToLower(a.get(SlotType))),
		projects: collectAllocations(a),
	}
	d.date, d.dateOK = parseCivilDate(a.get(SlotDate), p.location)
	d.total = totalLoad(d.projects)
	return d
}

// rule is one business check. field names the slot the message is filed
// under in the resulting FieldError.
type rule struct {
	field string
	check func(p *Parser, d *draft) error
}

// submissionRules run in order and every failure is kept.
var submissionRules = []rule{
	{field: SlotDate.String(), check: checkDateAnswered},
	{field: SlotType.String(), check: checkTypeAnswered},
	{field: SlotDate.String(), check: checkDateValid},
	{field: "projects", check: checkNotEmpty},
	{field: "projects", check: checkLoadCeiling},
}

func (p *Parser) applyRules(d *draft) error {
	collector := goerrors.NewCollector()
	for _, r := range submissionRules {
		if err := r.check(p, d); err != nil {
			collector.AddValidation(r.field, err.Error())
		}
	}
	if !collector.HasErrors() {
		return nil
	}
	return newRuleViolation(collector.GetAllValidationErrors())
}

func answeredRule(message string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if Answered(s) {
			return nil
		}
		return validation.NewError("validation_unanswered", message)
	})
}

func checkDateAnswered(_ *Parser, d *draft) error {
	return validation.Validate(d.answers.get(SlotDate), answeredRule(msgDateMandatory))
}

func checkTypeAnswered(_ *Parser, d *draft) error {
	return validation.Validate(d.answers.get(SlotType), answeredRule(msgTypeMandatory))
}

// checkDateValid runs even when the date is unanswered; the blank sentinel is
// not a calendar date either.
func checkDateValid(_ *Parser, d *draft) error {
	if d.dateOK {
		return nil
	}
	return validation.NewError("validation_invalid_date", fmt.Sprintf(msgInvalidDate, d.answers.get(SlotDate)))
}

func checkNotEmpty(_ *Parser, d *draft) error {
	if Answered(d.answers.get(SlotSupportLoad)) || len(d.projects) > 0 {
		return nil
	}
	return validation.NewError("validation_empty_projects", msgEmptyProjects)
}

// checkLoadCeiling only applies to known types. An unanswered or unknown type
// has no ceiling; the schema pass rejects unknown types later.
func checkLoadCeiling(p *Parser, d *draft) error {
	ceiling, ok := p.ceilings[d.kind]
	if !ok {
		return nil
	}
	message := fmt.Sprintf(msgCeilingPattern, typeLabel(d.kind), formatLoad(d.total))
	return validation.Validate(d.total,
		validation.Max(ceiling).ErrorObject(validation.NewError("validation_load_ceiling", message)),
	)
}

func typeLabel(kind Type) string {
	switch kind {
	case TypeWeekly:
		return "Weekly"
	case TypeDaily:
		return "Daily"
	}
	return string(kind)
}

func formatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	dayMonthPattern = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

// parseCivilDate reads D/M/Y or D-M-Y and anchors it at midnight in loc.
// Out-of-range dates such as 31/02/2024 are rejected rather than rolled
// over.
func parseCivilDate(input string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.ReplaceAll(input, "-", "/"), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	if !dayMonthPattern.MatchString(parts[0]) || !dayMonthPattern.MatchString(parts[1]) || !yearPattern.MatchString(parts[2]) {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	if loc == nil {
		loc = time.UTC
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// isoInstant renders t the way submissions carry dates:
// millisecond precision in UTC.
func isoInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
