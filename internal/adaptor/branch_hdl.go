package adaptor

import (
	"encoding/json"
	"net/http"

	"queue-booking/internal/dto/request"
	"queue-booking/internal/usecase"
	"queue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BranchHandler struct {
	service usecase.BranchService
	log     *zap.Logger
}

func NewBranchHandler(service usecase.BranchService, log *zap.Logger) *BranchHandler {
	return &BranchHandler{
		service: service,
		log:     log.With(zap.String("handler", "branch")),
	}
}

// Create handles POST /api/branches (protected, owner or admin)
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	branch, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create branch")
		return
	}

	utils.ResponseCreated(w, "success", branch)
}

// List handles GET /api/branches (public)
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var organizationID *uuid.UUID
	if raw := query.Get("organization_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid organization_id", nil)
			return
		}
		organizationID = &id
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	branches, err := h.service.List(r.Context(), organizationID, page)
	if err != nil {
		writeServiceError(w, h.log, err, "list branches")
		return
	}

	utils.ResponseSuccess(w, "success", branches)
}

// GetByID handles GET /api/branches/{id} (public)
func (h *BranchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	branchID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	branch, err := h.service.GetByID(r.Context(), branchID)
	if err != nil {
		writeServiceError(w, h.log, err, "get branch")
		return
	}

	utils.ResponseSuccess(w, "success", branch)
}

// Update handles PUT /api/branches/{id} (protected, owner or admin)
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	branchID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req request.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	branch, err := h.service.Update(r.Context(), userID, branchID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update branch")
		return
	}

	utils.ResponseSuccess(w, "success", branch)
}

// Delete handles DELETE /api/branches/{id} (protected, owner or admin)
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	branchID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, branchID); err != nil {
		writeServiceError(w, h.log, err, "delete branch")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
