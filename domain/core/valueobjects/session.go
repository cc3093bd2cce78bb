package valueobjects

import (
	pkgerrors "pledgeboard-backend/pkg/errors"
)

// Session is a bounded or open sitting period of the deliberative body. It is
// the temporal anchor for all resolution: officeholder lookups are answered
// as of its start date and evidence is windowed to its bounds.
type Session struct {
	ID      string
	Ordinal int

	StartDate Instant

	// EndDate is nil while the session is still sitting.
	EndDate *Instant

	// PrecedingAnchorDate is a secondary anchor (typically the preceding
	// election date). It is consulted only when no tenure overlaps the
	// formal start date: tenure data is sometimes entered relative to the
	// election rather than the first sitting day.
	PrecedingAnchorDate *Instant
}

// Validate checks the session's temporal invariants
func (s Session) Validate() error {
	if s.ID == "" {
		return pkgerrors.NewValidationError("session ID cannot be empty")
	}
	if s.StartDate.IsZero() {
		return pkgerrors.NewValidationError("session start date is required")
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return pkgerrors.NewValidationError("session end date precedes start date")
	}
	return nil
}

// Contains reports whether an instant falls inside the session's window.
// An open-ended session contains everything from its start onward.
func (s Session) Contains(i Instant) bool {
	if i.Before(s.StartDate) {
		return false
	}
	if s.EndDate != nil && i.After(*s.EndDate) {
		return false
	}
	return true
}
