package queries

import (
	"time"

	pkgerrors "pledgeboard-backend/pkg/errors"
)

// ListSessionCommitmentsQuery asks for all commitments tracked in a session,
// each summarized with its most recent in-session evidence date.
type ListSessionCommitmentsQuery struct {
	SessionID string
}

// Validate checks the query parameters
func (q ListSessionCommitmentsQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("session ID is required")
	}
	return nil
}

// CommitmentSummary is one commitment with its evidence recency summary
type CommitmentSummary struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	EvidenceCount          int        `json:"evidence_count"`
	MostRecentEvidenceDate *time.Time `json:"most_recent_evidence_date,omitempty"`

	// Partial indicates the evidence fetch for this commitment lost some
	// chunks; the summary may undercount.
	Partial bool `json:"partial,omitempty"`
}

// SessionCommitmentsResult lists a session's commitments
type SessionCommitmentsResult struct {
	SessionID   string              `json:"session_id"`
	Commitments []CommitmentSummary `json:"commitments"`
}
