package ports

import (
	"context"

	"pledgeboard-backend/domain/core/entities"
	"pledgeboard-backend/domain/core/valueobjects"
)

// TenureRepository defines the interface for tenure record reads
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type TenureRepository interface {
	// ListByRoleAndPeriod retrieves all tenure records sharing the role
	// identity and parliamentary period. The result is intentionally not
	// date-filtered by the store; record boundaries are not aligned to
	// session boundaries, so temporal filtering belongs to the resolver.
	ListByRoleAndPeriod(ctx context.Context, roleIdentityID string, ordinal int) ([]entities.TenureRecord, error)
}

// RoleIdentityRepository defines the interface for role identity reads
type RoleIdentityRepository interface {
	// GetByID retrieves a role identity with its historical mapping table
	GetByID(ctx context.Context, id string) (*valueobjects.RoleIdentity, error)
}

// SessionRepository defines the interface for session reads
type SessionRepository interface {
	// GetByID retrieves a session by its ID
	GetByID(ctx context.Context, id string) (*valueobjects.Session, error)

	// List retrieves all sessions, most recent ordinal first
	List(ctx context.Context) ([]valueobjects.Session, error)
}

// EvidenceRepository defines the interface for evidence record reads
type EvidenceRepository interface {
	// GetByID retrieves a single evidence record
	GetByID(ctx context.Context, id string) (*entities.EvidenceRecord, error)

	// GetByIDs retrieves records for an identifier set in one store call.
	// The store caps the cardinality of identifier-set lookups; callers
	// must chunk larger inputs (see services.EvidenceFetcher). Missing
	// identifiers are omitted from the result, not errors.
	GetByIDs(ctx context.Context, ids []string) ([]entities.EvidenceRecord, error)
}

// CommitmentRepository defines the interface for commitment reads
type CommitmentRepository interface {
	// GetByID retrieves a commitment by its ID
	GetByID(ctx context.Context, id string) (*entities.Commitment, error)

	// ListBySession retrieves all commitments tracked for a session
	ListBySession(ctx context.Context, sessionID string) ([]entities.Commitment, error)
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
