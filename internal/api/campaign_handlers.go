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

// CreateCampaignHandler handles POST /api/v1/org/campaigns
func CreateCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.Campaigns.Create(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Campaign created", view, http.StatusCreated)
	}
}

// ListCampaignsHandler handles GET /api/v1/campaigns (admin and public
// listing). Organizations hit /api/v1/org/campaigns which narrows to their
// own rows.
func ListCampaignsHandler(deps *Dependencies, ownOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		orgID := ""
		if ownOnly {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
				return
			}
			orgID = claims.UserID()
		}

		page, err := deps.Services.Campaigns.List(r.Context(), orgID, listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Campaigns fetched", page)
	}
}

// GetCampaignHandler handles GET /api/v1/campaigns/{id}
func GetCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := deps.Services.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Campaign fetched", view)
	}
}

// UpdateCampaignHandler handles PATCH /api/v1/org/campaigns/{id}
func UpdateCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.Campaigns.Update(r.Context(), claims.UserID(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Campaign updated", view)
	}
}

// DeleteCampaignHandler handles DELETE /api/v1/org/campaigns/{id}
func DeleteCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Campaigns.Delete(r.Context(), claims.UserID(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Campaign deleted", nil)
	}
}

// RegisterForCampaignHandler handles POST /api/v1/campaigns/{id}/register
func RegisterForCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}
		if claims.Role() != constants.RoleVolunteer {
			common.RespondError(w, initTime, nil, "Only volunteers can register", http.StatusForbidden)
			return
		}

		view, err := deps.Services.Campaigns.Register(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Registered", view, http.StatusCreated)
	}
}

// CancelCampaignRegistrationHandler handles DELETE /api/v1/campaigns/{id}/register
func CancelCampaignRegistrationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Campaigns.CancelRegistration(r.Context(), chi.URLParam(r, "id"), claims.UserID()); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Registration cancelled", nil)
	}
}

// ListCampaignRegistrationsHandler handles GET /api/v1/org/campaigns/{id}/registrations
func ListCampaignRegistrationsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		// Admins see any campaign's roster; organizations only their own.
		orgID := claims.UserID()
		if claims.Role() == constants.RoleAdmin {
			orgID = ""
		}

		views, err := deps.Services.Campaigns.ListRegistrations(r.Context(), orgID, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Registrations fetched", views)
	}
}

// MarkAttendanceHandler handles POST /api/v1/org/campaigns/{id}/attendance/{volunteerId}
func MarkAttendanceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		err := deps.Services.Campaigns.MarkAttended(r.Context(),
			claims.UserID(), chi.URLParam(r, "id"), chi.URLParam(r, "volunteerId"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Attendance recorded", nil)
	}
}

func (h *Handlers) CreateCampaign() http.HandlerFunc { return CreateCampaignHandler(h.deps) }
func (h *Handlers) ListCampaigns() http.HandlerFunc  { return ListCampaignsHandler(h.deps, false) }
func (h *Handlers) ListOwnCampaigns() http.HandlerFunc {
	return ListCampaignsHandler(h.deps, true)
}
func (h *Handlers) GetCampaign() http.HandlerFunc    { return GetCampaignHandler(h.deps) }
func (h *Handlers) UpdateCampaign() http.HandlerFunc { return UpdateCampaignHandler(h.deps) }
func (h *Handlers) DeleteCampaign() http.HandlerFunc { return DeleteCampaignHandler(h.deps) }
func (h *Handlers) RegisterForCampaign() http.HandlerFunc {
	return RegisterForCampaignHandler(h.deps)
}
func (h *Handlers) CancelCampaignRegistration() http.HandlerFunc {
	return CancelCampaignRegistrationHandler(h.deps)
}
func (h *Handlers) ListCampaignRegistrations() http.HandlerFunc {
	return ListCampaignRegistrationsHandler(h.deps)
}
func (h *Handlers) MarkAttendance() http.HandlerFunc { return MarkAttendanceHandler(h.deps) }
