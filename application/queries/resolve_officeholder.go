package queries

import (
	"time"

	pkgerrors "pledgeboard-backend/pkg/errors"
)

// ResolveOfficeholderQuery asks who held a role's leadership position during
// a session.
type ResolveOfficeholderQuery struct {
	SessionID string
	RoleID    string
}

// Validate checks the query parameters
func (q ResolveOfficeholderQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("session ID is required")
	}
	if q.RoleID == "" {
		return pkgerrors.NewValidationError("role ID is required")
	}
	return nil
}

// OfficeholderResult is the resolved officeholder for a role and session.
// Found is false when no authoritative record covers the period, a normal
// outcome, distinct from a store failure.
type OfficeholderResult struct {
	Found bool `json:"found"`

	RoleDisplayName string `json:"role_display_name"`

	PersonName    string     `json:"person_name,omitempty"`
	Party         string     `json:"party,omitempty"`
	Title         string     `json:"title,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	PositionStart *time.Time `json:"position_start,omitempty"`
	PositionEnd   *time.Time `json:"position_end,omitempty"`

	// Resolution provenance
	Remapped       bool   `json:"remapped,omitempty"`
	NameFallback   bool   `json:"name_fallback,omitempty"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	UsedAnchorDate bool   `json:"used_anchor_date,omitempty"`
}
