package services

import (
	"testing"
	"time"

	"pledgeboard-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func evidence(id, date string) entities.EvidenceRecord {
	return entities.EvidenceRecord{ID: id, Date: date, Summary: "summary " + id}
}

func TestEvidenceWindow_FilterAndRank_MostRecentFirst(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("e1", "2024-01-05"),
		evidence("e2", "2024-03-01"),
		evidence("e3", "2024-02-10"),
	}

	ranked := window.FilterAndRank(records, nil, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, "e2", ranked[0].Record.ID)
	assert.Equal(t, "e3", ranked[1].Record.ID)
	assert.Equal(t, "e1", ranked[2].Record.ID)
}

func TestEvidenceWindow_FilterAndRank_InclusiveBounds(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("before", "2024-01-01"),
		evidence("on-start", "2024-02-01"),
		evidence("inside", "2024-02-15"),
		evidence("on-end", "2024-03-01"),
		evidence("after", "2024-03-02"),
	}
	start := day(2024, time.February, 1)
	end := day(2024, time.March, 1)

	ranked := window.FilterAndRank(records, &start, &end)

	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Record.ID)
	}
	assert.Equal(t, []string{"on-end", "inside", "on-start"}, ids)
}

func TestEvidenceWindow_FilterAndRank_NilBoundsPassEverything(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("e1", "1999-01-01"),
		evidence("e2", "2030-12-31"),
	}

	ranked := window.FilterAndRank(records, nil, nil)

	assert.Len(t, ranked, 2)
}

func TestEvidenceWindow_FilterAndRank_ExcludesUnparseableDates(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("good", "2024-02-15"),
		evidence("bad", "not a date"),
		{ID: "nil-date", Date: nil},
	}

	ranked := window.FilterAndRank(records, nil, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, "good", ranked[0].Record.ID)
}

func TestEvidenceWindow_FilterAndRank_StableOnTies(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("first", "2024-02-15"),
		evidence("second", "2024-02-15"),
		evidence("third", "2024-02-15"),
	}

	ranked := window.FilterAndRank(records, nil, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Record.ID)
	assert.Equal(t, "second", ranked[1].Record.ID)
	assert.Equal(t, "third", ranked[2].Record.ID)
}

// Filtering an already-filtered set must be a no-op.
func TestEvidenceWindow_FilterAndRank_Idempotent(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())
	records := []entities.EvidenceRecord{
		evidence("e1", "2024-01-05"),
		evidence("e2", "2024-03-01"),
		evidence("e3", "2023-12-01"),
	}
	start := day(2024, time.January, 1)
	end := day(2024, time.December, 31)

	once := window.FilterAndRank(records, &start, &end)

	again := make([]entities.EvidenceRecord, 0, len(once))
	for _, r := range once {
		again = append(again, r.Record)
	}
	twice := window.FilterAndRank(again, &start, &end)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].Record.ID, twice[i].Record.ID)
	}
}

func TestMostRecentDate(t *testing.T) {
	window := NewEvidenceWindow(zap.NewNop())

	_, ok := MostRecentDate(nil)
	assert.False(t, ok)

	ranked := window.FilterAndRank([]entities.EvidenceRecord{
		evidence("e1", "2024-01-05"),
		evidence("e2", "2024-03-01"),
	}, nil, nil)

	date, ok := MostRecentDate(ranked)
	require.True(t, ok)
	y, m, d := date.CalendarDate()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 1, d)
}
