package submission

import (
	"encoding/json"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-workload/internal/validation"
)

// Schema returns the declarative shape every Submission record satisfies.
// A fresh map is returned on each call.
func Schema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"date": map[string]any{"type": "string"},
			"type": map[string]any{
				"type": "string",
				"enum": []any{string(TypeWeekly), string(TypeDaily)},
			},
			"product": map[string]any{"type": []any{"string", "null"}},
			"projects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string"},
						"load": map[string]any{"type": "number"},
					},
					"required":             []any{"id", "load"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{},
		"additionalProperties": false,
	}
}

var recordValidator = sync.OnceValue(func() *validation.Validator {
	return validation.MustCompile(Schema())
})

// Build validates payload against Schema and constructs a Submission from
// it. Payload may be a Record, a *Record or anything that encodes to the
// record's JSON shape, such as a decoded map.
func Build(payload any) (*Submission, error) {
	payload = normalizePayload(payload)
	if err := recordValidator().Validate(payload); err != nil {
		return nil, newSchemaViolation(schemaFieldErrors(err))
	}
	record, err := decodeRecord(payload)
	if err != nil {
		return nil, newSchemaViolation(schemaFieldErrors(err))
	}
	return newSubmission(record), nil
}

func normalizePayload(payload any) any {
	switch p := payload.(type) {
	case *Record:
		if p == nil {
			return payload
		}
		return normalizePayload(*p)
	case Record:
		if p.Projects == nil {
			p.Projects = []ProjectAllocation{}
		}
		return p
	}
	return payload
}

func decodeRecord(payload any) (Record, error) {
	if record, ok := payload.(Record); ok {
		return record, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal(encoded, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func schemaFieldErrors(err error) goerrors.ValidationErrors {
	issues := validation.Issues(err)
	fields := make(goerrors.ValidationErrors, 0, len(issues))
	for _, issue := range issues {
		field := issue.Location
		if field == "" {
			field = "#"
		}
		fields = append(fields, goerrors.FieldError{
			Field:   field,
			Message: issue.String(),
		})
	}
	return fields
}
