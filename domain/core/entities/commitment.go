package entities

// Commitment is a tracked policy statement made during a session.
type Commitment struct {
	ID        string
	SessionID string
	Text      string

	// LinkedEvidenceIDs preserves linkage order from the review workflow.
	// Order does not imply ranking; evidence is re-sorted by recency when
	// displayed. The list may contain duplicates.
	LinkedEvidenceIDs []string
}
