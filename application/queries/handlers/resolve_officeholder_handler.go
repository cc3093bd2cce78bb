package handlers

import (
	"context"
	"time"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/application/queries"
	"pledgeboard-backend/application/queries/bus"
	appservices "pledgeboard-backend/application/services"
	"pledgeboard-backend/domain/core/valueobjects"
	domainservices "pledgeboard-backend/domain/services"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResolveOfficeholderHandler answers officeholder resolution queries: it
// loads the session and role identity, applies the historical remapping,
// fetches the tenure candidates for the effective identity, and lets the
// resolver pick the best match.
type ResolveOfficeholderHandler struct {
	sessions ports.SessionRepository
	roles    ports.RoleIdentityRepository
	tenures  ports.TenureRepository
	remapper *appservices.IdentityRemapper
	resolver *domainservices.TenureResolver
	logger   *zap.Logger
}

// NewResolveOfficeholderHandler creates a new officeholder resolution handler
func NewResolveOfficeholderHandler(
	sessions ports.SessionRepository,
	roles ports.RoleIdentityRepository,
	tenures ports.TenureRepository,
	remapper *appservices.IdentityRemapper,
	resolver *domainservices.TenureResolver,
	logger *zap.Logger,
) *ResolveOfficeholderHandler {
	return &ResolveOfficeholderHandler{
		sessions: sessions,
		roles:    roles,
		tenures:  tenures,
		remapper: remapper,
		resolver: resolver,
		logger:   logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ResolveOfficeholderHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ResolveOfficeholderQuery)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type for officeholder handler")
	}
	return h.handle(ctx, q)
}

func (h *ResolveOfficeholderHandler) handle(ctx context.Context, q queries.ResolveOfficeholderQuery) (*queries.OfficeholderResult, error) {
	// Session and role identity reads are independent.
	var session *valueobjects.Session
	var role *valueobjects.RoleIdentity

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := h.sessions.GetByID(gctx, q.SessionID)
		if err != nil {
			return err
		}
		session = s
		return nil
	})
	g.Go(func() error {
		r, err := h.roles.GetByID(gctx, q.RoleID)
		if err != nil {
			return err
		}
		role = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	remap := h.remapper.Resolve(ctx, *role, *session)

	candidates, err := h.tenures.ListByRoleAndPeriod(ctx, remap.LookupID, session.Ordinal)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "tenures for role %s in period %d", remap.LookupID, session.Ordinal)
	}

	result := &queries.OfficeholderResult{
		RoleDisplayName: remap.DisplayName,
		Remapped:        remap.Remapped,
		NameFallback:    remap.NameFallback,
		FallbackReason:  remap.FallbackReason,
	}

	resolution, found := h.resolver.Resolve(candidates, *session)
	if !found {
		h.logger.Info("No authoritative tenure record for role in session",
			zap.String("roleID", q.RoleID),
			zap.String("lookupID", remap.LookupID),
			zap.String("sessionID", q.SessionID),
			zap.Int("candidates", len(candidates)),
		)
		return result, nil
	}

	tenure := resolution.Tenure
	result.Found = true
	result.PersonName = tenure.Record.PersonName
	result.Party = tenure.Record.Party
	result.Title = tenure.Record.Title
	result.AvatarURL = tenure.Record.AvatarURL
	result.PositionStart = timePtr(tenure.Start.Time())
	if tenure.End != nil {
		result.PositionEnd = timePtr(tenure.End.Time())
	}
	result.UsedAnchorDate = resolution.UsedAnchorDate
	return result, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
