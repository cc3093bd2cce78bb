package entities

import (
	"pledgeboard-backend/domain/core/valueobjects"
)

// EvidenceRecord is one timestamped unit of supporting material attached to
// one or more commitments. Records are produced by the evidence-collection
// pipeline and linked to commitments by an external review workflow; this
// engine treats both as already-resolved input and never mutates a record.
type EvidenceRecord struct {
	ID string

	// Date is raw as stored; the window filter normalizes it. A record
	// whose date cannot be normalized stays retrievable by ID but is
	// excluded from ranked timelines.
	Date valueobjects.RawTimestamp

	Summary   string
	SourceURL string

	// RelatedCommitmentIDs has set semantics; duplicates in stored data
	// are tolerated.
	RelatedCommitmentIDs []string
}

// RelatesTo reports whether the record is linked to the given commitment
func (e EvidenceRecord) RelatesTo(commitmentID string) bool {
	for _, id := range e.RelatedCommitmentIDs {
		if id == commitmentID {
			return true
		}
	}
	return false
}
