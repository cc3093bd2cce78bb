package handlers

import (
	"context"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/application/queries"
	"pledgeboard-backend/application/queries/bus"
	appservices "pledgeboard-backend/application/services"
	"pledgeboard-backend/domain/core/entities"
	domainservices "pledgeboard-backend/domain/services"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"go.uber.org/zap"
)

// CommitmentEvidenceHandler builds a commitment's ranked evidence timeline:
// batched fetch of the linked records, window filtering, recency ordering.
type CommitmentEvidenceHandler struct {
	commitments ports.CommitmentRepository
	sessions    ports.SessionRepository
	fetcher     *appservices.EvidenceFetcher
	window      *domainservices.EvidenceWindow
	logger      *zap.Logger
}

// NewCommitmentEvidenceHandler creates a new commitment evidence handler
func NewCommitmentEvidenceHandler(
	commitments ports.CommitmentRepository,
	sessions ports.SessionRepository,
	fetcher *appservices.EvidenceFetcher,
	window *domainservices.EvidenceWindow,
	logger *zap.Logger,
) *CommitmentEvidenceHandler {
	return &CommitmentEvidenceHandler{
		commitments: commitments,
		sessions:    sessions,
		fetcher:     fetcher,
		window:      window,
		logger:      logger,
	}
}

// Handle implements bus.QueryHandler
func (h *CommitmentEvidenceHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetCommitmentEvidenceQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type for commitment evidence handler")
	}
	return h.handle(ctx, q)
}

func (h *CommitmentEvidenceHandler) handle(ctx context.Context, q queries.GetCommitmentEvidenceQuery) (*queries.EvidenceTimelineResult, error) {
	commitment, err := h.commitments.GetByID(ctx, q.CommitmentID)
	if err != nil {
		return nil, err
	}

	windowStart, windowEnd := q.WindowStart, q.WindowEnd
	if q.ClampToSession {
		session, err := h.sessions.GetByID(ctx, commitment.SessionID)
		if err != nil {
			return nil, err
		}
		start := session.StartDate
		windowStart = &start
		windowEnd = session.EndDate
	}

	batch, err := h.fetcher.FetchByIDs(ctx, commitment.LinkedEvidenceIDs)
	if err != nil && !pkgerrors.IsPartialBatch(err) {
		// All chunks failed (or the caller cancelled): an empty timeline
		// here would be indistinguishable from "no evidence", so propagate.
		return nil, err
	}

	// The record's back-reference is authoritative when present: the review
	// workflow clears it before the commitment's forward link is cleaned up.
	// Records with no back-references predate reverse linking and are kept.
	records := make([]entities.EvidenceRecord, 0, len(batch.Records))
	for _, rec := range batch.Records {
		if len(rec.RelatedCommitmentIDs) > 0 && !rec.RelatesTo(commitment.ID) {
			h.logger.Warn("Dropping evidence record no longer linked to commitment",
				zap.String("commitmentID", commitment.ID),
				zap.String("evidenceID", rec.ID),
			)
			continue
		}
		records = append(records, rec)
	}

	ranked := h.window.FilterAndRank(records, windowStart, windowEnd)

	result := &queries.EvidenceTimelineResult{
		CommitmentID: commitment.ID,
		Items:        make([]queries.EvidenceItem, 0, len(ranked)),
		Partial:      len(batch.Failed) > 0,
		FailedChunks: len(batch.Failed),
	}
	for _, r := range ranked {
		result.Items = append(result.Items, queries.EvidenceItem{
			ID:        r.Record.ID,
			Date:      r.Date.Time(),
			Summary:   r.Record.Summary,
			SourceURL: r.Record.SourceURL,
		})
	}
	if mostRecent, ok := domainservices.MostRecentDate(ranked); ok {
		t := mostRecent.Time()
		result.MostRecent = &t
	}

	if result.Partial {
		h.logger.Warn("Returning partial evidence timeline",
			zap.String("commitmentID", commitment.ID),
			zap.Int("failedChunks", result.FailedChunks),
			zap.Int("items", len(result.Items)),
		)
	}
	return result, nil
}
