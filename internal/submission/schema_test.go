package submission

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildFromDecodedMap(t *testing.T) {
	payload := map[string]any{
		"date":    "2024-08-05T00:00:00.000Z",
		"type":    "daily",
		"product": nil,
		"projects": []any{
			map[string]any{"id": "PRJ-101", "load": 0.5},
		},
	}
	sub, err := Build(payload)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sub.Type() != TypeDaily {
		t.Fatalf("unexpected type %q", sub.Type())
	}
	if _, ok := sub.Product(); ok {
		t.Fatalf("expected null product")
	}
	if projects := sub.Projects(); len(projects) != 1 || projects[0].Load != 0.5 {
		t.Fatalf("unexpected projects %+v", projects)
	}
}

func TestBuildRecordWithoutProjects(t *testing.T) {
	sub, err := Build(Record{Date: "2024-08-05T00:00:00.000Z", Type: "weekly"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(sub.Projects()) != 0 {
		t.Fatalf("expected no projects")
	}
}

func TestBuildRejectsAdditionalProperties(t *testing.T) {
	_, err := Build(map[string]any{
		"date":  "2024-08-05T00:00:00.000Z",
		"type":  "weekly",
		"owner": "someone",
	})
	if !IsSchemaViolation(err) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	messages := Messages(err)
	if len(messages) != 1 || !strings.Contains(messages[0], "owner") {
		t.Fatalf("unexpected messages %q", messages)
	}
}

func TestBuildRejectsIncompleteProject(t *testing.T) {
	_, err := Build(map[string]any{
		"type":     "weekly",
		"projects": []any{map[string]any{"id": "PRJ-101", "hours": 3}},
	})
	if !IsSchemaViolation(err) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	for _, message := range Messages(err) {
		if !strings.HasPrefix(message, "#/projects/0") {
			t.Fatalf("unexpected issue location %q", message)
		}
	}
	if len(Messages(err)) < 2 {
		t.Fatalf("expected missing load and extra property issues, got %q", Messages(err))
	}
}

func TestBuildRejectsNilRecord(t *testing.T) {
	var record *Record
	if _, err := Build(record); !IsSchemaViolation(err) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestSubmissionIsImmutable(t *testing.T) {
	sub, err := Parse(readIssue(t, "complete.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	projects := sub.Projects()
	projects[0].Load = 99
	record := sub.Record()
	*record.Product = "Other"
	if sub.Projects()[0].Load == 99 {
		t.Fatalf("projects leaked internal state")
	}
	if product, _ := sub.Product(); product != "Billing" {
		t.Fatalf("product leaked internal state: %q", product)
	}
}

func TestSubmissionMarshalJSON(t *testing.T) {
	sub, err := Parse(readIssue(t, "incomplete.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	encoded, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"date":"2024-08-13T00:00:00.000Z","type":"weekly","product":null,"projects":[{"id":"PRJ-101","load":2},{"id":"PRJ-204","load":1.5}]}`
	if string(encoded) != want {
		t.Fatalf("unexpected json\n got: %s\nwant: %s", encoded, want)
	}

	parsed, err := sub.Time()
	if err != nil || parsed.Day() != 13 {
		t.Fatalf("unexpected time %v (%v)", parsed, err)
	}
}
