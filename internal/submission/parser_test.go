package submission

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-workload/internal/markdown"
)

func readIssue(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(raw)
}

// issueBody renders values in the layout of the issue form.
func issueBody(values ...string) string {
	var b strings.Builder
	for i, value := range values {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", Slot(i), value)
	}
	return b.String()
}

func expectMessages(t *testing.T, err error, want ...string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
	got := Messages(err)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("messages mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestParseCompleteIssue(t *testing.T) {
	sub, err := Parse(readIssue(t, "complete.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(sub.Projects()); got != 4 {
		t.Fatalf("expected 4 projects, got %d", got)
	}
	if sub.Type() != TypeWeekly {
		t.Fatalf("expected weekly, got %q", sub.Type())
	}
	if sub.Date() != "2024-08-05T00:00:00.000Z" {
		t.Fatalf("unexpected date %q", sub.Date())
	}
	if product, ok := sub.Product(); !ok || product != "Billing" {
		t.Fatalf("unexpected product %q (%v)", product, ok)
	}
	if first := sub.Projects()[0]; first.ID != SupportProjectID || first.Load != 1 {
		t.Fatalf("expected support first, got %+v", first)
	}
	if sub.TotalLoad() != 4.5 {
		t.Fatalf("expected total 4.5, got %v", sub.TotalLoad())
	}
}

func TestParseWeeklyWithTwoProjects(t *testing.T) {
	body := issueBody("13/08/2024", "weekly", NoResponse, NoResponse,
		"PRJ-1", "2", "PRJ-2", "2.5", NoResponse, NoneAnswer)
	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(sub.Projects()); got != 2 {
		t.Fatalf("expected 2 projects, got %d", got)
	}
	if sub.Type() != TypeWeekly {
		t.Fatalf("expected weekly, got %q", sub.Type())
	}
	if sub.Date() != "2024-08-13T00:00:00.000Z" {
		t.Fatalf("unexpected date %q", sub.Date())
	}
	if _, ok := sub.Product(); ok {
		t.Fatalf("expected no product")
	}
}

func TestParseIncompleteIssue(t *testing.T) {
	sub, err := Parse(readIssue(t, "incomplete.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	projects := sub.Projects()
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %+v", projects)
	}
	if projects[0].ID != "PRJ-101" || projects[1].ID != "PRJ-204" {
		t.Fatalf("unexpected projects %+v", projects)
	}
	if sub.Type() != TypeWeekly {
		t.Fatalf("expected weekly, got %q", sub.Type())
	}
	if sub.Date() != "2024-08-13T00:00:00.000Z" {
		t.Fatalf("unexpected date %q", sub.Date())
	}
	if _, ok := sub.Product(); ok {
		t.Fatalf("expected no product")
	}
}

func TestParseBrokenDate(t *testing.T) {
	_, err := Parse(readIssue(t, "broken_date.md"))
	expectMessages(t, err, "Invalid date: plelp")
	if !IsRuleViolation(err) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if IsSchemaViolation(err) {
		t.Fatalf("rule violation reported as schema violation")
	}
}

func TestParseDailyCeiling(t *testing.T) {
	_, err := Parse(readIssue(t, "too_much_daily.md"))
	expectMessages(t, err, "Daily load can have a maximum of 1 dev.days, you entered: 1.7")
}

func TestParseWeeklyCeiling(t *testing.T) {
	_, err := Parse(readIssue(t, "too_much_weekly.md"))
	expectMessages(t, err, "Weekly load can have a maximum of 5 dev.days, you entered: 6")
}

func TestParseRequiresProjectOrSupport(t *testing.T) {
	body := issueBody("05/08/2024", "Weekly", NoResponse, NoResponse,
		NoResponse, NoneAnswer, NoResponse, NoneAnswer, NoResponse, NoneAnswer)
	_, err := Parse(body)
	expectMessages(t, err, "Invalid projects submission: submit at least 1 project or support")
}

func TestParseSentinelsAreEquivalent(t *testing.T) {
	var results [][]string
	for _, blank := range []string{NoResponse, NoneAnswer} {
		body := issueBody("05/08/2024", "daily", blank, blank, blank, blank, blank, blank, blank, blank)
		_, err := Parse(body)
		results = append(results, Messages(err))
	}
	if !reflect.DeepEqual(results[0], results[1]) {
		t.Fatalf("sentinels produced different errors: %q vs %q", results[0], results[1])
	}
	if len(results[0]) != 1 {
		t.Fatalf("expected a single emptiness error, got %q", results[0])
	}
}

func TestParseUnansweredTypeSkipsCeiling(t *testing.T) {
	body := issueBody(NoResponse, NoneAnswer, NoResponse, "9",
		NoResponse, NoneAnswer, NoResponse, NoneAnswer, NoResponse, NoneAnswer)
	_, err := Parse(body)
	expectMessages(t, err,
		"Date is mandatory",
		"Type is mandatory",
		"Invalid date: _No response_",
	)
}

func TestParseAccumulatesInOrder(t *testing.T) {
	body := issueBody("31/02/2024", "WEEKLY", NoResponse, "3",
		"PRJ-101", "4", NoResponse, NoneAnswer, NoResponse, NoneAnswer)
	_, err := Parse(body)
	expectMessages(t, err,
		"Invalid date: 31/02/2024",
		"Weekly load can have a maximum of 5 dev.days, you entered: 7",
	)

	var ge *goerrors.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerrors.Error, got %T", err)
	}
	if ge.Category != goerrors.CategoryValidation || ge.TextCode != TextCodeRulesFailed {
		t.Fatalf("unexpected category/code %s/%s", ge.Category, ge.TextCode)
	}
	if ge.ValidationErrors[0].Field != "date" || ge.ValidationErrors[1].Field != "projects" {
		t.Fatalf("unexpected fields %+v", ge.ValidationErrors)
	}
}

func TestParseUnknownTypeFailsSchema(t *testing.T) {
	body := issueBody("05/08/2024", "Monthly", NoResponse, "1",
		NoResponse, NoneAnswer, NoResponse, NoneAnswer, NoResponse, NoneAnswer)
	_, err := Parse(body)
	if !IsSchemaViolation(err) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	messages := Messages(err)
	if len(messages) != 1 || !strings.HasPrefix(messages[0], "#/type: ") {
		t.Fatalf("unexpected schema messages %q", messages)
	}
}

func TestParseDropsZeroAndNonNumericLoads(t *testing.T) {
	body := issueBody("05/08/2024", "weekly", NoResponse, "1",
		"PRJ-101", "0", "PRJ-204", "two", "PRJ-310", "1e2")
	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	projects := sub.Projects()
	if len(projects) != 1 || projects[0].ID != SupportProjectID {
		t.Fatalf("expected only support, got %+v", projects)
	}
}

func TestParseMalformedIssue(t *testing.T) {
	_, err := Parse(issueBody("05/08/2024", "weekly", "Billing"))
	if !errors.Is(err, ErrMalformedIssue) {
		t.Fatalf("expected ErrMalformedIssue, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatalf("malformed issue must not be a validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input category")
	}
	if Messages(err) != nil {
		t.Fatalf("expected no messages for envelope error")
	}
}

func TestParseIsIdempotent(t *testing.T) {
	body := readIssue(t, "complete.md")
	first, err := Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(first.Record(), second.Record()) {
		t.Fatalf("parse is not deterministic: %+v vs %+v", first.Record(), second.Record())
	}

	_, errA := Parse(readIssue(t, "broken_date.md"))
	_, errB := Parse(readIssue(t, "broken_date.md"))
	if !reflect.DeepEqual(Messages(errA), Messages(errB)) {
		t.Fatalf("error lists differ")
	}
}

func TestParserWithLocation(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	parser := NewParser(WithLocation(paris))
	sub, err := parser.Parse(readIssue(t, "complete.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Date() != "2024-08-04T22:00:00.000Z" {
		t.Fatalf("unexpected date %q", sub.Date())
	}
}

func TestParserWithLoadCeilings(t *testing.T) {
	parser := NewParser(WithLoadCeilings(7, 2))
	if _, err := parser.Parse(readIssue(t, "too_much_weekly.md")); err != nil {
		t.Fatalf("expected weekly 6 to pass with ceiling 7: %v", err)
	}
	if _, err := parser.Parse(readIssue(t, "too_much_daily.md")); err != nil {
		t.Fatalf("expected daily 1.7 to pass with ceiling 2: %v", err)
	}

	body := issueBody("05/08/2024", "daily", NoResponse, "2.5",
		NoResponse, NoneAnswer, NoResponse, NoneAnswer, NoResponse, NoneAnswer)
	_, err := parser.Parse(body)
	expectMessages(t, err, "Daily load can have a maximum of 2 dev.days, you entered: 2.5")
}

func TestParserWithGoldmarkSegmenter(t *testing.T) {
	body := readIssue(t, "complete.md")
	want, err := Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := NewParser(WithSegmenter(markdown.NewGoldmarkSegmenter())).Parse(body)
	if err != nil {
		t.Fatalf("goldmark parse: %v", err)
	}
	if !reflect.DeepEqual(want.Record(), got.Record()) {
		t.Fatalf("segmenters disagree: %+v vs %+v", want.Record(), got.Record())
	}
}

func TestParseConcurrentCallers(t *testing.T) {
	body := readIssue(t, "complete.md")
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Parse(body); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent parse: %v", err)
	}
}
