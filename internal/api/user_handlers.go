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

// ListVolunteersHandler handles GET /api/v1/admin/volunteers
func ListVolunteersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		page, err := deps.Services.UserAdmin.ListVolunteers(r.Context(), listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Volunteers fetched", page)
	}
}

// ListBeneficiariesHandler handles GET /api/v1/admin/beneficiaries
func ListBeneficiariesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		page, err := deps.Services.UserAdmin.ListBeneficiaries(r.Context(), listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Beneficiaries fetched", page)
	}
}

// ListOrganizationsHandler handles GET /api/v1/admin/organizations
func ListOrganizationsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		page, err := deps.Services.UserAdmin.ListOrganizations(r.Context(), listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Organizations fetched", page)
	}
}

// GetVolunteerHandler handles GET /api/v1/admin/volunteers/{id}
func GetVolunteerHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		detail, err := deps.Services.UserAdmin.GetVolunteer(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Volunteer fetched", detail)
	}
}

// GetBeneficiaryHandler handles GET /api/v1/admin/beneficiaries/{id}
func GetBeneficiaryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		detail, err := deps.Services.UserAdmin.GetBeneficiary(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Beneficiary fetched", detail)
	}
}

// GetOrganizationHandler handles GET /api/v1/admin/organizations/{id}
func GetOrganizationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		detail, err := deps.Services.UserAdmin.GetOrganization(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Organization fetched", detail)
	}
}

// UpdateUserStatusHandler handles PATCH /api/v1/admin/users/{id}/status
//
// Approving, denying, banning, and unbanning all go through here; the
// service enforces the status machine.
func UpdateUserStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateUserStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.UserAdmin.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Status updated", view)
	}
}

// UpdateVolunteerHandler handles PATCH /api/v1/admin/volunteers/{id}
func UpdateVolunteerHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateVolunteerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		detail, err := deps.Services.UserAdmin.UpdateVolunteer(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Volunteer updated", detail)
	}
}

// UpdateBeneficiaryHandler handles PATCH /api/v1/admin/beneficiaries/{id}
func UpdateBeneficiaryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateBeneficiaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		detail, err := deps.Services.UserAdmin.UpdateBeneficiary(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Beneficiary updated", detail)
	}
}

// UpdateOrganizationHandler handles PATCH /api/v1/admin/organizations/{id}
func UpdateOrganizationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateOrganizationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		detail, err := deps.Services.UserAdmin.UpdateOrganization(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Organization updated", detail)
	}
}

// CreateMemberAccountHandler handles POST /api/v1/admin/users and
// POST /api/v1/org/members. Accounts created by an organization are attached
// to it as members.
func CreateMemberAccountHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateMemberAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		creatorOrgID := ""
		if claims.Role() == constants.RoleOrganization {
			creatorOrgID = claims.UserID()
		}

		view, err := deps.Services.Accounts.CreateMemberAccount(r.Context(), creatorOrgID, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Account created", view, http.StatusCreated)
	}
}

// ListOrgMembersHandler handles GET /api/v1/org/members?role=VOLUNTEER
func ListOrgMembersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		role := constants.UserRole(r.URL.Query().Get("role"))
		if role != constants.RoleVolunteer && role != constants.RoleBeneficiary {
			role = constants.RoleVolunteer
		}

		page, err := deps.Services.UserAdmin.ListMembers(r.Context(), claims.UserID(), role, listQueryFromRequest(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Members fetched", page)
	}
}

func (h *Handlers) ListVolunteers() http.HandlerFunc      { return ListVolunteersHandler(h.deps) }
func (h *Handlers) ListBeneficiaries() http.HandlerFunc   { return ListBeneficiariesHandler(h.deps) }
func (h *Handlers) ListOrganizations() http.HandlerFunc   { return ListOrganizationsHandler(h.deps) }
func (h *Handlers) GetVolunteer() http.HandlerFunc        { return GetVolunteerHandler(h.deps) }
func (h *Handlers) GetBeneficiary() http.HandlerFunc      { return GetBeneficiaryHandler(h.deps) }
func (h *Handlers) GetOrganization() http.HandlerFunc     { return GetOrganizationHandler(h.deps) }
func (h *Handlers) UpdateUserStatus() http.HandlerFunc    { return UpdateUserStatusHandler(h.deps) }
func (h *Handlers) UpdateVolunteer() http.HandlerFunc     { return UpdateVolunteerHandler(h.deps) }
func (h *Handlers) UpdateBeneficiary() http.HandlerFunc   { return UpdateBeneficiaryHandler(h.deps) }
func (h *Handlers) UpdateOrganization() http.HandlerFunc  { return UpdateOrganizationHandler(h.deps) }
func (h *Handlers) CreateMemberAccount() http.HandlerFunc { return CreateMemberAccountHandler(h.deps) }
func (h *Handlers) ListOrgMembers() http.HandlerFunc      { return ListOrgMembersHandler(h.deps) }
