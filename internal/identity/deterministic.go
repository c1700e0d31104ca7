// Package identity derives stable UUIDs for issue checks so repeated runs
// over the same input log the same identifiers.
package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-workload"

// UUID derives a deterministic UUID from key. Empty keys yield uuid.Nil.
// Keys must be prefixed by kind to avoid collisions across kinds.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RunUUID identifies one check of an issue revision: the same issue number
// and body always map to the same id, and editing the body changes it.
func RunUUID(issueNumber int, body string) uuid.UUID {
	return UUID(namespace + ":issue_check:" + strconv.Itoa(issueNumber) + ":" + body)
}

// SubmissionUUID identifies the accepted submission of an issue for a
// reporting period.
func SubmissionUUID(issueNumber int, date, kind string) uuid.UUID {
	return UUID(namespace + ":submission:" + strconv.Itoa(issueNumber) + ":" +
		strings.TrimSpace(date) + ":" + strings.ToLower(strings.TrimSpace(kind)))
}
