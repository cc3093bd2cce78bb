package services

import (
	"sort"

	"pledgeboard-backend/domain/core/entities"
	"pledgeboard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// RankedEvidence pairs an evidence record with its normalized date.
type RankedEvidence struct {
	Record entities.EvidenceRecord
	Date   valueobjects.Instant
}

// EvidenceWindow applies session-bound date filtering to evidence records
// and computes recency-ordered views.
type EvidenceWindow struct {
	logger *zap.Logger
}

// NewEvidenceWindow creates a new evidence window filter
func NewEvidenceWindow(logger *zap.Logger) *EvidenceWindow {
	return &EvidenceWindow{logger: logger}
}

// FilterAndRank normalizes each record's date, keeps records inside the
// window, and sorts most-recent-first. Bounds are inclusive; a nil bound
// imposes no filter. Ties keep input order, so filtering is stable and
// idempotent.
//
// A record whose date fails to normalize is excluded here because it cannot
// be meaningfully ordered; it stays retrievable by ID elsewhere. Exclusion is
// a presentation decision, not data deletion.
func (w *EvidenceWindow) FilterAndRank(records []entities.EvidenceRecord, windowStart, windowEnd *valueobjects.Instant) []RankedEvidence {
	ranked := make([]RankedEvidence, 0, len(records))
	for _, rec := range records {
		date, err := valueobjects.Normalize(rec.Date)
		if err != nil {
			w.logger.Debug("Excluding evidence with unparseable date from ranked view",
				zap.String("evidenceID", rec.ID),
				zap.Error(err),
			)
			continue
		}
		if windowStart != nil && date.Before(*windowStart) {
			continue
		}
		if windowEnd != nil && date.After(*windowEnd) {
			continue
		}
		ranked = append(ranked, RankedEvidence{Record: rec, Date: date})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Date.After(ranked[j].Date)
	})
	return ranked
}

// MostRecentDate returns the date of the most recent in-window record. The
// second return is false when the filtered set is empty.
func MostRecentDate(ranked []RankedEvidence) (valueobjects.Instant, bool) {
	if len(ranked) == 0 {
		return valueobjects.Instant{}, false
	}
	return ranked[0].Date, true
}
