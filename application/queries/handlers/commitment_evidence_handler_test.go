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

func evidenceFixture() (*fakeCommitmentRepo, *fakeSessionRepo, *fakeEvidenceRepo) {
	end := instantOf(2025, time.March, 1)
	sessions := &fakeSessionRepo{sessions: map[string]*valueobjects.Session{
		"44-1": {ID: "44-1", Ordinal: 44, StartDate: instantOf(2021, time.November, 22), EndDate: &end},
	}}
	commitments := &fakeCommitmentRepo{commitments: map[string]*entities.Commitment{
		"c1": {ID: "c1", SessionID: "44-1", Text: "Plant two billion trees", LinkedEvidenceIDs: []string{"e1", "e2", "e3"}},
	}}
	evidence := &fakeEvidenceRepo{records: map[string]entities.EvidenceRecord{
		"e1": {ID: "e1", Date: "2022-05-01", Summary: "first progress report"},
		"e2": {ID: "e2", Date: "2023-08-15", Summary: "second progress report"},
		"e3": {ID: "e3", Date: "2020-01-01", Summary: "pre-session announcement"},
	}}
	return commitments, sessions, evidence
}

func newEvidenceHandler(commitments *fakeCommitmentRepo, sessions *fakeSessionRepo, evidence *fakeEvidenceRepo) *CommitmentEvidenceHandler {
	logger := zap.NewNop()
	return NewCommitmentEvidenceHandler(
		commitments,
		sessions,
		appservices.NewEvidenceFetcher(evidence, 30, 4, logger),
		domainservices.NewEvidenceWindow(logger),
		logger,
	)
}

func TestCommitmentEvidenceHandler_Handle_UnboundedWindow(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	handler := newEvidenceHandler(commitments, sessions, evidence)

	result, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{CommitmentID: "c1"})

	require.NoError(t, err)
	res := result.(*queries.EvidenceTimelineResult)
	assert.Equal(t, "c1", res.CommitmentID)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "e2", res.Items[0].ID)
	assert.Equal(t, "e1", res.Items[1].ID)
	assert.Equal(t, "e3", res.Items[2].ID)
	require.NotNil(t, res.MostRecent)
	assert.False(t, res.Partial)
}

func TestCommitmentEvidenceHandler_Handle_ClampToSession(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	handler := newEvidenceHandler(commitments, sessions, evidence)

	result, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{
		CommitmentID:   "c1",
		ClampToSession: true,
	})

	require.NoError(t, err)
	res := result.(*queries.EvidenceTimelineResult)
	// e3 predates the session and is clamped out.
	require.Len(t, res.Items, 2)
	assert.Equal(t, "e2", res.Items[0].ID)
	assert.Equal(t, "e1", res.Items[1].ID)
}

func TestCommitmentEvidenceHandler_Handle_ExplicitWindow(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	handler := newEvidenceHandler(commitments, sessions, evidence)

	start := instantOf(2022, time.January, 1)
	end := instantOf(2022, time.December, 31)
	result, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{
		CommitmentID: "c1",
		WindowStart:  &start,
		WindowEnd:    &end,
	})

	require.NoError(t, err)
	res := result.(*queries.EvidenceTimelineResult)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "e1", res.Items[0].ID)
}

func TestCommitmentEvidenceHandler_Handle_UnlinkedRecordExcluded(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	commitments.commitments["c1"].LinkedEvidenceIDs = append(
		commitments.commitments["c1"].LinkedEvidenceIDs, "e4", "e5")
	// e4's back-references no longer include c1; e5's still do.
	evidence.records["e4"] = entities.EvidenceRecord{
		ID: "e4", Date: "2024-06-01", Summary: "relinked elsewhere",
		RelatedCommitmentIDs: []string{"c9"},
	}
	evidence.records["e5"] = entities.EvidenceRecord{
		ID: "e5", Date: "2023-12-01", Summary: "still linked",
		RelatedCommitmentIDs: []string{"c1", "c9"},
	}
	handler := newEvidenceHandler(commitments, sessions, evidence)

	result, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{CommitmentID: "c1"})

	require.NoError(t, err)
	res := result.(*queries.EvidenceTimelineResult)
	require.Len(t, res.Items, 4)
	assert.Equal(t, "e5", res.Items[0].ID)
	for _, item := range res.Items {
		assert.NotEqual(t, "e4", item.ID)
	}
}

func TestCommitmentEvidenceHandler_Handle_CommitmentNotFound(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	handler := newEvidenceHandler(commitments, sessions, evidence)

	_, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{CommitmentID: "ghost"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCommitmentEvidenceHandler_Handle_StoreFailurePropagates(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	evidence.err = pkgerrors.NewStoreError("batch get evidence records", context.DeadlineExceeded)
	handler := newEvidenceHandler(commitments, sessions, evidence)

	_, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{CommitmentID: "c1"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsStore(err))
}

func TestCommitmentEvidenceHandler_Handle_NoLinkedEvidence(t *testing.T) {
	commitments, sessions, evidence := evidenceFixture()
	commitments.commitments["c2"] = &entities.Commitment{ID: "c2", SessionID: "44-1", Text: "No evidence yet"}
	handler := newEvidenceHandler(commitments, sessions, evidence)

	result, err := handler.Handle(context.Background(), queries.GetCommitmentEvidenceQuery{CommitmentID: "c2"})

	require.NoError(t, err)
	res := result.(*queries.EvidenceTimelineResult)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.MostRecent)
}
