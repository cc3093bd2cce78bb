package services

import (
	"context"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// RemapResult carries the identity to use for tenure lookup and the name to
// display, plus explicit flags for the best-effort parts so callers see when
// a fallback was taken instead of losing that distinction in logs.
type RemapResult struct {
	LookupID    string
	DisplayName string

	// Remapped is true when a session-specific historical mapping
	// redirected the lookup.
	Remapped bool

	// NameFallback is true when the mapped identity's own display name
	// could not be resolved and the original role's name is shown instead.
	NameFallback   bool
	FallbackReason string
}

// IdentityRemapper resolves a role identity to its session-specific
// historical identity before tenure resolution runs. Remapping is resolved
// at most once per call; the remapped identity is used only for tenure
// lookup, never for display unless its own name was obtained.
type IdentityRemapper struct {
	roles  ports.RoleIdentityRepository
	logger *zap.Logger
}

// NewIdentityRemapper creates a new identity remapper
func NewIdentityRemapper(roles ports.RoleIdentityRepository, logger *zap.Logger) *IdentityRemapper {
	return &IdentityRemapper{roles: roles, logger: logger}
}

// Resolve produces the effective lookup identity and display name for a role
// within a session. Display-name resolution for a mapped identity is
// best-effort: a failed fetch is logged and flagged, never raised, and never
// blocks tenure lookup.
func (r *IdentityRemapper) Resolve(ctx context.Context, role valueobjects.RoleIdentity, session valueobjects.Session) RemapResult {
	mapping, ok := role.MappingFor(session.ID)
	if !ok {
		return RemapResult{LookupID: role.ID, DisplayName: role.DisplayName}
	}

	result := RemapResult{
		LookupID:    mapping.LookupID,
		DisplayName: role.DisplayName,
		Remapped:    true,
	}

	if mapping.DisplayNameOverride != "" {
		result.DisplayName = mapping.DisplayNameOverride
		return result
	}

	mapped, err := r.roles.GetByID(ctx, mapping.LookupID)
	if err != nil {
		r.logger.Warn("Could not resolve display name for mapped identity, using original role name",
			zap.String("roleID", role.ID),
			zap.String("mappedID", mapping.LookupID),
			zap.String("sessionID", session.ID),
			zap.Error(err),
		)
		result.NameFallback = true
		result.FallbackReason = err.Error()
		return result
	}

	if mapped.DisplayName != "" {
		result.DisplayName = mapped.DisplayName
	} else {
		result.NameFallback = true
		result.FallbackReason = "mapped identity has no display name"
	}
	return result
}
