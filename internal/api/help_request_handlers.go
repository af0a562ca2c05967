package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// CreateHelpRequestHandler handles POST /api/v1/help-requests
func CreateHelpRequestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}
		if claims.Role() != constants.RoleBeneficiary {
			common.RespondError(w, initTime, nil, "Only beneficiaries can file requests", http.StatusForbidden)
			return
		}

		var req dtos.CreateHelpRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.HelpRequests.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help request created", view, http.StatusCreated)
	}
}

// ListHelpRequestsHandler handles GET /api/v1/help-requests. Admins see the
// full moderation queue; beneficiaries their own requests; volunteers their
// assignments.
func ListHelpRequestsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		requesterID, volunteerID := "", ""
		switch claims.Role() {
		case constants.RoleBeneficiary:
			requesterID = claims.UserID()
		case constants.RoleVolunteer:
			volunteerID = claims.UserID()
		}

		page, err := deps.Services.HelpRequests.List(r.Context(), requesterID, volunteerID, listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help requests fetched", page)
	}
}

// GetHelpRequestHandler handles GET /api/v1/help-requests/{id}
func GetHelpRequestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := deps.Services.HelpRequests.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help request fetched", view)
	}
}

// ModerateHelpRequestHandler handles PATCH /api/v1/admin/help-requests/{id}/status
func ModerateHelpRequestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ModerateHelpRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.HelpRequests.Moderate(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help request moderated", view)
	}
}

// AssignVolunteerHandler handles POST /api/v1/admin/help-requests/{id}/assign
func AssignVolunteerHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignVolunteerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.HelpRequests.AssignVolunteer(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Volunteer assigned", view)
	}
}

type completeHelpRequestBody struct {
	ProofImages []string `json:"proofImages"`
}

// CompleteHelpRequestHandler handles POST /api/v1/help-requests/{id}/complete
func CompleteHelpRequestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var body completeHelpRequestBody
		_ = json.NewDecoder(r.Body).Decode(&body)

		view, err := deps.Services.HelpRequests.Complete(r.Context(), chi.URLParam(r, "id"), claims.UserID(), body.ProofImages)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help request completed", view)
	}
}

// CancelHelpRequestHandler handles POST /api/v1/help-requests/{id}/cancel
func CancelHelpRequestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		view, err := deps.Services.HelpRequests.Cancel(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Help request cancelled", view)
	}
}

func (h *Handlers) CreateHelpRequest() http.HandlerFunc { return CreateHelpRequestHandler(h.deps) }
func (h *Handlers) ListHelpRequests() http.HandlerFunc  { return ListHelpRequestsHandler(h.deps) }
func (h *Handlers) GetHelpRequest() http.HandlerFunc    { return GetHelpRequestHandler(h.deps) }
func (h *Handlers) ModerateHelpRequest() http.HandlerFunc {
	return ModerateHelpRequestHandler(h.deps)
}
func (h *Handlers) AssignVolunteer() http.HandlerFunc { return AssignVolunteerHandler(h.deps) }
func (h *Handlers) CompleteHelpRequest() http.HandlerFunc {
	return CompleteHelpRequestHandler(h.deps)
}
func (h *Handlers) CancelHelpRequest() http.HandlerFunc { return CancelHelpRequestHandler(h.deps) }
