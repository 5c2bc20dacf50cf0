package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// HistoryRecord pairs one user question with one system answer. Records are
// append-only and immutable; both text fields hold already-normalized
// strings.
type HistoryRecord struct {
	ID        string
	UserID    string
	Question  string
	Answer    string
	CreatedAt time.Time
}

// NewHistoryRecord stamps the record with a ULID. ULIDs carry the creation
// time in their prefix, so equal-timestamp records still sort in insertion
// order under the (created_at, id) retrieval ordering.
func NewHistoryRecord(userID, question, answer string) *HistoryRecord {
	return &HistoryRecord{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
}
