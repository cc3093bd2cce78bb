package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "pledgeboard", cfg.DynamoDBTable)
	assert.Equal(t, "SessionIndex", cfg.SessionIndexName)
	assert.Equal(t, 30, cfg.EvidenceBatchSize)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EVIDENCE_BATCH_SIZE", "25")
	t.Setenv("TABLE_NAME", "pledgeboard-staging")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.EvidenceBatchSize)
	assert.Equal(t, "pledgeboard-staging", cfg.DynamoDBTable)
	assert.False(t, cfg.EnableCORS)
}

func TestConfig_Validate_BatchSizeBounds(t *testing.T) {
	cfg := &Config{EvidenceBatchSize: 0, FetchConcurrency: 4}
	assert.Error(t, cfg.Validate())

	cfg.EvidenceBatchSize = 101
	assert.Error(t, cfg.Validate())

	cfg.EvidenceBatchSize = 30
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Concurrency(t *testing.T) {
	cfg := &Config{EvidenceBatchSize: 30, FetchConcurrency: 0}

	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("EVIDENCE_BATCH_SIZE", "lots")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.EvidenceBatchSize)
}
