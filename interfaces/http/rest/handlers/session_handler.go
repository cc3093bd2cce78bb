package handlers

import (
	"net/http"
	"time"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/application/queries"
	querybus "pledgeboard-backend/application/queries/bus"
	"pledgeboard-backend/pkg/common"
	pkgerrors "pledgeboard-backend/pkg/errors"
	"pledgeboard-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionHandler handles session listing HTTP requests
type SessionHandler struct {
	sessions ports.SessionRepository
	queryBus *querybus.QueryBus
	errs     *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions ports.SessionRepository, queryBus *querybus.QueryBus, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		queryBus: queryBus,
		errs:     errs,
		logger:   logger,
	}
}

// sessionView is the wire representation of a session
type sessionView struct {
	ID        string     `json:"id"`
	Ordinal   int        `json:"ordinal"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		view := sessionView{
			ID:        s.ID,
			Ordinal:   s.Ordinal,
			StartDate: s.StartDate.Time(),
		}
		if s.EndDate != nil {
			end := s.EndDate.Time()
			view.EndDate = &end
		}
		views = append(views, view)
	}

	common.RespondJSON(w, http.StatusOK, views)
}

type sessionCommitmentsParams struct {
	SessionID string `validate:"required,min=1,max=64"`
}

// ListCommitments handles GET /sessions/{sessionID}/commitments
func (h *SessionHandler) ListCommitments(w http.ResponseWriter, r *http.Request) {
	params := sessionCommitmentsParams{
		SessionID: chi.URLParam(r, "sessionID"),
	}
	if err := utils.ValidateStruct(params); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, err.Error())
		return
	}

	query := queries.ListSessionCommitmentsQuery{SessionID: params.SessionID}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
