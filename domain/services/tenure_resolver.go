package services

import (
	"sort"

	"pledgeboard-backend/domain/core/entities"
	"pledgeboard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// ResolvedTenure is a tenure candidate whose interval normalized
// successfully. End of nil means the tenure is ongoing.
type ResolvedTenure struct {
	Record entities.TenureRecord
	Start  valueobjects.Instant
	End    *valueobjects.Instant
}

// Resolution is a successful officeholder resolution. UsedAnchorDate is an
// explicit flag rather than a log line so callers can see when the answer
// came from the secondary anchor instead of the formal start date.
type Resolution struct {
	Tenure         ResolvedTenure
	UsedAnchorDate bool
}

// TenureResolver answers "who held this role during this session" over the
// candidate set fetched for the role and parliamentary period. The store's
// record boundaries are not guaranteed aligned to session boundaries, so the
// store query is not date-filtered; all temporal logic lives here.
type TenureResolver struct {
	logger *zap.Logger
}

// NewTenureResolver creates a new tenure resolver
func NewTenureResolver(logger *zap.Logger) *TenureResolver {
	return &TenureResolver{logger: logger}
}

// Resolve picks the single best-matching tenure for the session, or reports
// that none exists. An empty result is a legitimate terminal state ("no
// authoritative record for this period"), not an error.
//
// Candidates are filtered to those active as of the session's start date. If
// none qualify and the session carries a preceding anchor date, the filter is
// retried as of the anchor: tenure data is sometimes entered relative to the
// preceding election rather than the first sitting day, and sessions can
// begin before the government transition is reflected in the data.
func (r *TenureResolver) Resolve(candidates []entities.TenureRecord, session valueobjects.Session) (*Resolution, bool) {
	parsed := r.normalizeCandidates(candidates)
	if len(parsed) == 0 {
		return nil, false
	}

	usedAnchor := false
	active := activeAsOf(parsed, session.StartDate)
	if len(active) == 0 && session.PrecedingAnchorDate != nil && !session.PrecedingAnchorDate.IsZero() {
		active = activeAsOf(parsed, *session.PrecedingAnchorDate)
		usedAnchor = len(active) > 0
	}
	if len(active) == 0 {
		return nil, false
	}

	rankCandidates(active)
	r.warnOnAmbiguity(active, session)

	winner := active[0]
	if winner.Record.AvatarURL == "" {
		winner.Record.AvatarURL = FallbackAvatarURL(session.ID, winner.Record.PersonName, winner.Record.Party)
	}
	return &Resolution{Tenure: winner, UsedAnchorDate: usedAnchor}, true
}

// normalizeCandidates parses each candidate's interval, skipping records
// whose dates fail to normalize. Malformed individual records are a data
// problem, not a request failure.
func (r *TenureResolver) normalizeCandidates(candidates []entities.TenureRecord) []ResolvedTenure {
	parsed := make([]ResolvedTenure, 0, len(candidates))
	for _, c := range candidates {
		start, err := valueobjects.Normalize(c.PositionStart)
		if err != nil {
			r.logger.Warn("Skipping tenure record with unparseable start date",
				zap.String("recordID", c.ID),
				zap.String("roleIdentityID", c.RoleIdentityID),
				zap.Error(err),
			)
			continue
		}

		var end *valueobjects.Instant
		if c.PositionEnd != nil {
			e, err := valueobjects.Normalize(c.PositionEnd)
			if err != nil {
				r.logger.Warn("Skipping tenure record with unparseable end date",
					zap.String("recordID", c.ID),
					zap.String("roleIdentityID", c.RoleIdentityID),
					zap.Error(err),
				)
				continue
			}
			end = &e
		}

		parsed = append(parsed, ResolvedTenure{Record: c, Start: start, End: end})
	}
	return parsed
}

// activeAsOf keeps candidates whose interval covers the query date; an
// absent end date counts as active indefinitely.
func activeAsOf(candidates []ResolvedTenure, queryDate valueobjects.Instant) []ResolvedTenure {
	active := make([]ResolvedTenure, 0, len(candidates))
	for _, c := range candidates {
		if c.Start.After(queryDate) {
			continue
		}
		if c.End != nil && c.End.Before(queryDate) {
			continue
		}
		active = append(active, c)
	}
	return active
}

// rankCandidates orders candidates best-first: latest start wins; among
// equal starts an ongoing tenure outranks an ended one; among those, latest
// end wins; name is the final tiebreak so the result is deterministic for
// any input ordering.
func rankCandidates(candidates []ResolvedTenure) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
		if (a.End == nil) != (b.End == nil) {
			return a.End == nil
		}
		if a.End != nil && !a.End.Equal(*b.End) {
			return a.End.After(*b.End)
		}
		return a.Record.PersonName < b.Record.PersonName
	})
}

// warnOnAmbiguity flags the open data-quality assumption: two simultaneous
// ongoing records cannot be disambiguated beyond the deterministic order.
func (r *TenureResolver) warnOnAmbiguity(active []ResolvedTenure, session valueobjects.Session) {
	openEnded := 0
	for _, c := range active {
		if c.End == nil {
			openEnded++
		}
	}
	if openEnded > 1 {
		r.logger.Warn("Multiple ongoing tenure records for role in session",
			zap.String("roleIdentityID", active[0].Record.RoleIdentityID),
			zap.String("sessionID", session.ID),
			zap.Int("openEnded", openEnded),
		)
	}
}
