package handlers

import (
	"context"
	"testing"
	"time"

	"pledgeboard-backend/application/queries"
	appservices "pledgeboard-backend/application/services"
	"pledgeboard-backend/domain/core/entities"
	"pledgeboard-backend/domain/core/valueobjects"
	domainservices "pledgeboard-backend/domain/services"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func instantOf(y int, m time.Month, d int) valueobjects.Instant {
	return valueobjects.NewInstant(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func officeholderFixture() (*fakeSessionRepo, *fakeRoleRepo, *fakeTenureRepo) {
	sessions := &fakeSessionRepo{sessions: map[string]*valueobjects.Session{
		"45-1": {ID: "45-1", Ordinal: 45, StartDate: instantOf(2023, time.September, 18)},
	}}
	roles := &fakeRoleRepo{roles: map[string]*valueobjects.RoleIdentity{
		"env-minister": {ID: "env-minister", DisplayName: "Minister of Environment"},
	}}
	tenures := &fakeTenureRepo{records: map[string][]entities.TenureRecord{
		tenureKey("env-minister", 45): {
			{ID: "t1", RoleIdentityID: "env-minister", PersonName: "Jane Doe", Party: "Liberal Party", Title: "Minister", PositionStart: "2023-01-10"},
		},
	}}
	return sessions, roles, tenures
}

func newOfficeholderHandler(sessions *fakeSessionRepo, roles *fakeRoleRepo, tenures *fakeTenureRepo) *ResolveOfficeholderHandler {
	logger := zap.NewNop()
	return NewResolveOfficeholderHandler(
		sessions,
		roles,
		tenures,
		appservices.NewIdentityRemapper(roles, logger),
		domainservices.NewTenureResolver(logger),
		logger,
	)
}

func TestResolveOfficeholderHandler_Handle_Success(t *testing.T) {
	sessions, roles, tenures := officeholderFixture()
	handler := newOfficeholderHandler(sessions, roles, tenures)

	result, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "45-1",
		RoleID:    "env-minister",
	})

	require.NoError(t, err)
	res, ok := result.(*queries.OfficeholderResult)
	require.True(t, ok)
	assert.True(t, res.Found)
	assert.Equal(t, "Jane Doe", res.PersonName)
	assert.Equal(t, "Minister of Environment", res.RoleDisplayName)
	assert.Equal(t, "Liberal Party", res.Party)
	require.NotNil(t, res.PositionStart)
	assert.Nil(t, res.PositionEnd)
	assert.False(t, res.Remapped)
	assert.False(t, res.UsedAnchorDate)
}

func TestResolveOfficeholderHandler_Handle_NoTenureIsNotAnError(t *testing.T) {
	sessions, roles, _ := officeholderFixture()
	tenures := &fakeTenureRepo{records: map[string][]entities.TenureRecord{}}
	handler := newOfficeholderHandler(sessions, roles, tenures)

	result, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "45-1",
		RoleID:    "env-minister",
	})

	require.NoError(t, err)
	res := result.(*queries.OfficeholderResult)
	assert.False(t, res.Found)
	assert.Equal(t, "Minister of Environment", res.RoleDisplayName)
	assert.Empty(t, res.PersonName)
}

func TestResolveOfficeholderHandler_Handle_SessionNotFound(t *testing.T) {
	sessions, roles, tenures := officeholderFixture()
	handler := newOfficeholderHandler(sessions, roles, tenures)

	_, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "99-1",
		RoleID:    "env-minister",
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestResolveOfficeholderHandler_Handle_RoleNotFound(t *testing.T) {
	sessions, roles, tenures := officeholderFixture()
	handler := newOfficeholderHandler(sessions, roles, tenures)

	_, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "45-1",
		RoleID:    "nonexistent",
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestResolveOfficeholderHandler_Handle_RemappedLookup(t *testing.T) {
	sessions, roles, _ := officeholderFixture()
	roles.roles["env-minister"].HistoricalMapping = map[string]valueobjects.HistoricalIdentity{
		"45-1": {LookupID: "env-climate-minister"},
	}
	roles.roles["env-climate-minister"] = &valueobjects.RoleIdentity{
		ID:          "env-climate-minister",
		DisplayName: "Minister of Environment and Climate Change",
	}
	tenures := &fakeTenureRepo{records: map[string][]entities.TenureRecord{
		tenureKey("env-climate-minister", 45): {
			{ID: "t9", RoleIdentityID: "env-climate-minister", PersonName: "Sam Reyes", Party: "Liberal Party", PositionStart: "2023-01-10"},
		},
	}}
	handler := newOfficeholderHandler(sessions, roles, tenures)

	result, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "45-1",
		RoleID:    "env-minister",
	})

	require.NoError(t, err)
	res := result.(*queries.OfficeholderResult)
	assert.True(t, res.Found)
	assert.True(t, res.Remapped)
	assert.Equal(t, "Sam Reyes", res.PersonName)
	assert.Equal(t, "Minister of Environment and Climate Change", res.RoleDisplayName)
	// The tenure lookup must have used the mapped identity, not the original.
	assert.Equal(t, []string{tenureKey("env-climate-minister", 45)}, tenures.calls)
}

func TestResolveOfficeholderHandler_Handle_TenureStoreFailure(t *testing.T) {
	sessions, roles, _ := officeholderFixture()
	tenures := &fakeTenureRepo{err: pkgerrors.NewStoreError("query tenure records", context.DeadlineExceeded)}
	handler := newOfficeholderHandler(sessions, roles, tenures)

	_, err := handler.Handle(context.Background(), queries.ResolveOfficeholderQuery{
		SessionID: "45-1",
		RoleID:    "env-minister",
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsStore(err))
	// The wrapped error names the identity and period that failed.
	assert.Contains(t, err.Error(), "env-minister")
	assert.Contains(t, err.Error(), "45")
}

func TestResolveOfficeholderHandler_Handle_WrongQueryType(t *testing.T) {
	sessions, roles, tenures := officeholderFixture()
	handler := newOfficeholderHandler(sessions, roles, tenures)

	_, err := handler.Handle(context.Background(), queries.ListSessionCommitmentsQuery{SessionID: "45-1"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
}
