package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	a := UUID("go-workload:test:key")
	b := UUID("  go-workload:test:key  ")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected stable non-nil id, got %s / %s", a, b)
	}
	if UUID("go-workload:test:other") == a {
		t.Fatalf("expected different keys to differ")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected nil id for empty key")
	}
}

func TestRunUUIDTracksBody(t *testing.T) {
	first := RunUUID(42, "### Date\n\n05/08/2024")
	if first != RunUUID(42, "### Date\n\n05/08/2024") {
		t.Fatalf("expected same id for same revision")
	}
	if first == RunUUID(42, "### Date\n\n06/08/2024") {
		t.Fatalf("expected edited body to change the run id")
	}
	if first == RunUUID(43, "### Date\n\n05/08/2024") {
		t.Fatalf("expected issue number to change the run id")
	}
}

func TestSubmissionUUIDNormalisesType(t *testing.T) {
	a := SubmissionUUID(7, "2024-08-05T00:00:00.000Z", "weekly")
	b := SubmissionUUID(7, "2024-08-05T00:00:00.000Z", " Weekly ")
	if a != b {
		t.Fatalf("expected type normalisation, got %s / %s", a, b)
	}
	if a == SubmissionUUID(7, "2024-08-05T00:00:00.000Z", "daily") {
		t.Fatalf("expected type to change the id")
	}
}
