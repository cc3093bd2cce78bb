package handlers

import (
	"net/http"

	"pledgeboard-backend/application/queries"
	querybus "pledgeboard-backend/application/queries/bus"
	"pledgeboard-backend/pkg/common"
	pkgerrors "pledgeboard-backend/pkg/errors"
	"pledgeboard-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OfficeholderHandler handles officeholder resolution HTTP requests
type OfficeholderHandler struct {
	queryBus *querybus.QueryBus
	errs     *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewOfficeholderHandler creates a new officeholder handler
func NewOfficeholderHandler(queryBus *querybus.QueryBus, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *OfficeholderHandler {
	return &OfficeholderHandler{
		queryBus: queryBus,
		errs:     errs,
		logger:   logger,
	}
}

type officeholderParams struct {
	SessionID string `validate:"required,min=1,max=64"`
	RoleID    string `validate:"required,min=1,max=64"`
}

// GetOfficeholder handles GET /sessions/{sessionID}/roles/{roleID}/officeholder
func (h *OfficeholderHandler) GetOfficeholder(w http.ResponseWriter, r *http.Request) {
	params := officeholderParams{
		SessionID: chi.URLParam(r, "sessionID"),
		RoleID:    chi.URLParam(r, "roleID"),
	}
	if err := utils.ValidateStruct(params); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, err.Error())
		return
	}

	query := queries.ResolveOfficeholderQuery{
		SessionID: params.SessionID,
		RoleID:    params.RoleID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
