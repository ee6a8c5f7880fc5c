package adaptor

import (
	"encoding/json"
	"net/http"

	"queue-booking/internal/dto/request"
	"queue-booking/internal/usecase"
	"queue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizationHandler struct {
	service  usecase.OrganizationService
	branches usecase.BranchService
	slots    usecase.SlotService
	stats    usecase.StatsService
	log      *zap.Logger
}

func NewOrganizationHandler(
	service usecase.OrganizationService,
	branches usecase.BranchService,
	slots usecase.SlotService,
	stats usecase.StatsService,
	log *zap.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		service:  service,
		branches: branches,
		slots:    slots,
		stats:    stats,
		log:      log.With(zap.String("handler", "organization")),
	}
}

// Create handles POST /api/organizations (protected)
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	org, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create organization")
		return
	}

	utils.ResponseCreated(w, "success", org)
}

// List handles GET /api/organizations (public)
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var category *string
	if c := query.Get("category"); c != "" {
		category = &c
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	orgs, err := h.service.List(r.Context(), category, page)
	if err != nil {
		writeServiceError(w, h.log, err, "list organizations")
		return
	}

	utils.ResponseSuccess(w, "success", orgs)
}

// GetByID handles GET /api/organizations/{id} (public)
func (h *OrganizationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	org, err := h.service.GetByID(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.log, err, "get organization")
		return
	}

	utils.ResponseSuccess(w, "success", org)
}

// Update handles PUT /api/organizations/{id} (protected, owner or admin)
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orgID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req request.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	org, err := h.service.Update(r.Context(), userID, orgID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update organization")
		return
	}

	utils.ResponseSuccess(w, "success", org)
}

// GetBranches handles GET /api/organizations/{id}/branches (public)
func (h *OrganizationHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	branches, err := h.branches.ListByOrganization(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, h.log, err, "list organization branches")
		return
	}

	utils.ResponseSuccess(w, "success", branches)
}

// GetStats handles GET /api/organizations/{id}/stats?period=week (protected, owner or admin)
func (h *OrganizationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orgID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	stats, err := h.stats.Get(r.Context(), userID, orgID, period)
	if err != nil {
		writeServiceError(w, h.log, err, "get organization stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetBookings handles GET /api/organizations/{id}/bookings (protected, owner or admin)
func (h *OrganizationHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orgID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := &request.OrganizationBookingsFilter{}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("branch_id"); v != "" {
		filter.BranchID = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	bookings, err := h.slots.OrganizationBookings(r.Context(), userID, orgID, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list organization bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// parseIDParam reads the {id} chi URL parameter as a UUID, writing the
// error response itself when the value is missing or malformed.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "ID is required", nil)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ID", nil)
		return uuid.Nil, false
	}

	return id, true
}
