package valueobjects

// HistoricalIdentity redirects a role-identity lookup for one session to the
// identity the role had at the time. Departments get split, renamed, and
// merged between sessions; tenure records are keyed to the identity as it
// existed then, which may differ from the identity current navigation uses.
type HistoricalIdentity struct {
	LookupID            string
	DisplayNameOverride string
}

// RoleIdentity is a stable key for an organizational leadership position,
// independent of who currently holds it.
type RoleIdentity struct {
	ID          string
	DisplayName string

	// HistoricalMapping is keyed by session ID. Empty for roles whose
	// identity has been stable across sessions.
	HistoricalMapping map[string]HistoricalIdentity
}

// MappingFor returns the historical identity override for a session, if any
func (r RoleIdentity) MappingFor(sessionID string) (HistoricalIdentity, bool) {
	if r.HistoricalMapping == nil {
		return HistoricalIdentity{}, false
	}
	m, ok := r.HistoricalMapping[sessionID]
	return m, ok
}
