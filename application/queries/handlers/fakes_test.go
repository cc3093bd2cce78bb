package handlers

import (
	"context"
	"fmt"

	"pledgeboard-backend/domain/core/entities"
	"pledgeboard-backend/domain/core/valueobjects"
	pkgerrors "pledgeboard-backend/pkg/errors"
)

type fakeSessionRepo struct {
	sessions map[string]*valueobjects.Session
	err      error
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*valueobjects.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("session %s", id))
}

func (f *fakeSessionRepo) List(ctx context.Context) ([]valueobjects.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]valueobjects.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles map[string]*valueobjects.RoleIdentity
	err   error
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id string) (*valueobjects.RoleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("role identity %s", id))
}

type fakeTenureRepo struct {
	// records keyed by "lookupID/ordinal"
	records map[string][]entities.TenureRecord
	err     error
	calls   []string
}

func tenureKey(lookupID string, ordinal int) string {
	return fmt.Sprintf("%s/%d", lookupID, ordinal)
}

func (f *fakeTenureRepo) ListByRoleAndPeriod(ctx context.Context, roleIdentityID string, ordinal int) ([]entities.TenureRecord, error) {
	f.calls = append(f.calls, tenureKey(roleIdentityID, ordinal))
	if f.err != nil {
		return nil, f.err
	}
	return f.records[tenureKey(roleIdentityID, ordinal)], nil
}

type fakeCommitmentRepo struct {
	commitments map[string]*entities.Commitment
	bySession   map[string][]entities.Commitment
	err         error
}

func (f *fakeCommitmentRepo) GetByID(ctx context.Context, id string) (*entities.Commitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.commitments[id]; ok {
		return c, nil
	}
	return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("commitment %s", id))
}

func (f *fakeCommitmentRepo) ListBySession(ctx context.Context, sessionID string) ([]entities.Commitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bySession[sessionID], nil
}

type fakeEvidenceRepo struct {
	records map[string]entities.EvidenceRecord
	err     error
}

func (f *fakeEvidenceRepo) GetByID(ctx context.Context, id string) (*entities.EvidenceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if rec, ok := f.records[id]; ok {
		return &rec, nil
	}
	return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("evidence record %s", id))
}

func (f *fakeEvidenceRepo) GetByIDs(ctx context.Context, ids []string) ([]entities.EvidenceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entities.EvidenceRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := f.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
