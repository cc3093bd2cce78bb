package handlers

import (
	"net/http"

	"pledgeboard-backend/application/queries"
	querybus "pledgeboard-backend/application/queries/bus"
	"pledgeboard-backend/domain/core/valueobjects"
	"pledgeboard-backend/pkg/common"
	pkgerrors "pledgeboard-backend/pkg/errors"
	"pledgeboard-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EvidenceHandler handles commitment evidence timeline HTTP requests
type EvidenceHandler struct {
	queryBus *querybus.QueryBus
	errs     *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(queryBus *querybus.QueryBus, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *EvidenceHandler {
	return &EvidenceHandler{
		queryBus: queryBus,
		errs:     errs,
		logger:   logger,
	}
}

type evidenceTimelineParams struct {
	CommitmentID string `validate:"required,min=1,max=64"`
	From         string `validate:"omitempty,max=64"`
	To           string `validate:"omitempty,max=64"`
	Scope        string `validate:"omitempty,oneof=session all"`
}

// GetTimeline handles GET /commitments/{commitmentID}/evidence.
// Optional from/to bounds accept dates or timestamps; scope=session clamps
// the window to the commitment's session instead.
func (h *EvidenceHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	params := evidenceTimelineParams{
		CommitmentID: chi.URLParam(r, "commitmentID"),
		From:         r.URL.Query().Get("from"),
		To:           r.URL.Query().Get("to"),
		Scope:        r.URL.Query().Get("scope"),
	}
	if err := utils.ValidateStruct(params); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, err.Error())
		return
	}

	query := queries.GetCommitmentEvidenceQuery{
		CommitmentID:   params.CommitmentID,
		ClampToSession: params.Scope == "session",
	}

	if params.From != "" {
		from, err := valueobjects.Normalize(params.From)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "unparseable 'from' bound")
			return
		}
		query.WindowStart = &from
	}
	if params.To != "" {
		to, err := valueobjects.Normalize(params.To)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "unparseable 'to' bound")
			return
		}
		query.WindowEnd = &to
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
