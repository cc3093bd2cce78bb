package queries

import (
	"time"

	"pledgeboard-backend/domain/core/valueobjects"
	pkgerrors "pledgeboard-backend/pkg/errors"
)

// GetCommitmentEvidenceQuery asks for a commitment's evidence timeline,
// optionally restricted to a window. Both bounds are inclusive; a nil bound
// imposes no filter.
type GetCommitmentEvidenceQuery struct {
	CommitmentID string
	WindowStart  *valueobjects.Instant
	WindowEnd    *valueobjects.Instant

	// ClampToSession replaces the explicit window with the commitment's
	// session bounds.
	ClampToSession bool
}

// Validate checks the query parameters
func (q GetCommitmentEvidenceQuery) Validate() error {
	if q.CommitmentID == "" {
		return pkgerrors.NewValidationError("commitment ID is required")
	}
	if q.WindowStart != nil && q.WindowEnd != nil && q.WindowEnd.Before(*q.WindowStart) {
		return pkgerrors.NewValidationError("window end precedes window start")
	}
	return nil
}

// EvidenceItem is one evidence record in a ranked timeline
type EvidenceItem struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Summary   string    `json:"summary"`
	SourceURL string    `json:"source_url,omitempty"`
}

// EvidenceTimelineResult is a commitment's window-filtered evidence, most
// recent first. Partial indicates some batch chunks failed; the items shown
// are real but may be incomplete.
type EvidenceTimelineResult struct {
	CommitmentID string         `json:"commitment_id"`
	Items        []EvidenceItem `json:"items"`
	MostRecent   *time.Time     `json:"most_recent,omitempty"`

	Partial      bool `json:"partial,omitempty"`
	FailedChunks int  `json:"failed_chunks,omitempty"`
}
