package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// rawPrefix marks keys produced by internal training exports ("id_0", "id_1", ...).
// Those keys are positional and not stable across exports, so they are hashed
// into a content-addressed id. Anything else is treated as an already
// generated identifier and kept verbatim.
const rawPrefix = "id_"

// DeriveID returns the hex-encoded SHA-256 digest of seed. It is the single
// source of identifiers in the system: the same seed always maps to the same
// id, which makes every ingestion path naturally idempotent against a store
// that rejects duplicate ids.
func DeriveID(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// ImportID normalizes an identifier coming from an export file.
func ImportID(raw string) string {
	if strings.HasPrefix(raw, rawPrefix) {
		return DeriveID(raw)
	}
	return raw
}

// AnswerID derives the id of a live-submitted answer. Seeding from
// (questionID, authorID) keeps the id stable per student per question, so a
// resubmission collides with the original instead of duplicating it.
func AnswerID(questionID, authorID string) string {
	return DeriveID(fmt.Sprintf("%s_%s", questionID, authorID))
}

// QuestionID derives the id of a question authored in the application.
func QuestionID(teacherID string, createdAt time.Time) string {
	return DeriveID(fmt.Sprintf("%s_q_%s", teacherID, createdAt.Format(time.RFC3339Nano)))
}

// ReferenceAnswerID derives the id of the reference answer created together
// with a question.
func ReferenceAnswerID(teacherID string, createdAt time.Time) string {
	return DeriveID(fmt.Sprintf("%s_a_%s", teacherID, createdAt.Format(time.RFC3339Nano)))
}
