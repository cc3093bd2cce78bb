package cache

import (
	"context"
	"testing"

	"pledgeboard-backend/domain/core/valueobjects"
	memcache "pledgeboard-backend/pkg/cache"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRoleRepo struct {
	role  *valueobjects.RoleIdentity
	err   error
	calls int
}

func (r *countingRoleRepo) GetByID(ctx context.Context, id string) (*valueobjects.RoleIdentity, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.role, nil
}

func TestCachedRoleIdentityRepository_SecondReadServedFromCache(t *testing.T) {
	inner := &countingRoleRepo{role: &valueobjects.RoleIdentity{ID: "pm", DisplayName: "Prime Minister"}}
	repo := NewCachedRoleIdentityRepository(inner, memcache.New(), 300, zap.NewNop())

	first, err := repo.GetByID(context.Background(), "pm")
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), "pm")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedRoleIdentityRepository_ErrorsNotCached(t *testing.T) {
	inner := &countingRoleRepo{err: pkgerrors.NewStoreError("get role identity", context.DeadlineExceeded)}
	repo := NewCachedRoleIdentityRepository(inner, memcache.New(), 300, zap.NewNop())

	_, err := repo.GetByID(context.Background(), "pm")
	require.Error(t, err)
	_, err = repo.GetByID(context.Background(), "pm")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}
