package entities

import (
	"pledgeboard-backend/domain/core/valueobjects"
)

// TenureRecord is one interval during which a named individual held a role.
// Records are produced upstream by the ingestion pipeline and are read-only
// here.
//
// The position dates are carried raw: record boundaries in the store are not
// guaranteed aligned to session boundaries, and older records use older
// timestamp encodings. The resolver normalizes them and discards candidates
// whose dates fail to parse.
type TenureRecord struct {
	ID             string
	RoleIdentityID string
	PersonName     string
	Party          string
	Title          string

	// PositionStart is required. PositionEnd of nil means the tenure is
	// ongoing.
	PositionStart valueobjects.RawTimestamp
	PositionEnd   valueobjects.RawTimestamp

	AvatarURL string
}
