package handlers

import (
	"context"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/application/queries"
	"pledgeboard-backend/application/queries/bus"
	appservices "pledgeboard-backend/application/services"
	domainservices "pledgeboard-backend/domain/services"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sessionSummaryConcurrency bounds how many commitments have their evidence
// summarized at once when building a session page.
const sessionSummaryConcurrency = 4

// SessionCommitmentsHandler lists a session's commitments with their
// most-recent-evidence summaries. Per-commitment evidence aggregation is
// independent work and runs concurrently up to a bounded worker count.
type SessionCommitmentsHandler struct {
	sessions    ports.SessionRepository
	commitments ports.CommitmentRepository
	fetcher     *appservices.EvidenceFetcher
	window      *domainservices.EvidenceWindow
	logger      *zap.Logger
}

// NewSessionCommitmentsHandler creates a new session commitments handler
func NewSessionCommitmentsHandler(
	sessions ports.SessionRepository,
	commitments ports.CommitmentRepository,
	fetcher *appservices.EvidenceFetcher,
	window *domainservices.EvidenceWindow,
	logger *zap.Logger,
) *SessionCommitmentsHandler {
	return &SessionCommitmentsHandler{
		sessions:    sessions,
		commitments: commitments,
		fetcher:     fetcher,
		window:      window,
		logger:      logger,
	}
}

// Handle implements bus.QueryHandler
func (h *SessionCommitmentsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListSessionCommitmentsQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type for session commitments handler")
	}
	return h.handle(ctx, q)
}

func (h *SessionCommitmentsHandler) handle(ctx context.Context, q queries.ListSessionCommitmentsQuery) (*queries.SessionCommitmentsResult, error) {
	session, err := h.sessions.GetByID(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}

	commitments, err := h.commitments.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	windowStart := session.StartDate
	summaries := make([]queries.CommitmentSummary, len(commitments))

	var g errgroup.Group
	g.SetLimit(sessionSummaryConcurrency)
	for i, commitment := range commitments {
		g.Go(func() error {
			summary := queries.CommitmentSummary{
				ID:   commitment.ID,
				Text: commitment.Text,
			}

			batch, err := h.fetcher.FetchByIDs(ctx, commitment.LinkedEvidenceIDs)
			if err != nil && !pkgerrors.IsPartialBatch(err) {
				// A dead store for one commitment should not take the
				// whole session page down; flag it and move on.
				h.logger.Warn("Evidence fetch failed for commitment summary",
					zap.String("commitmentID", commitment.ID),
					zap.Error(err),
				)
				summary.Partial = true
				summaries[i] = summary
				return nil
			}

			ranked := h.window.FilterAndRank(batch.Records, &windowStart, session.EndDate)
			summary.EvidenceCount = len(ranked)
			summary.Partial = len(batch.Failed) > 0
			if mostRecent, ok := domainservices.MostRecentDate(ranked); ok {
				t := mostRecent.Time()
				summary.MostRecentEvidenceDate = &t
			}
			summaries[i] = summary
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &queries.SessionCommitmentsResult{
		SessionID:   session.ID,
		Commitments: summaries,
	}, nil
}
