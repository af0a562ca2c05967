package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// AddVolunteerCommentHandler handles POST /api/v1/admin/volunteers/{id}/comments
func AddVolunteerCommentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.Feedback.AddComment(r.Context(), chi.URLParam(r, "id"), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Comment added", view, http.StatusCreated)
	}
}

// ListVolunteerCommentsHandler handles GET /volunteers/{id}/comments on the
// admin and organization areas.
func ListVolunteerCommentsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		views, err := deps.Services.Feedback.ListComments(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Comments fetched", views)
	}
}

// DeleteVolunteerCommentHandler handles DELETE /comments/{id} on the admin
// and organization areas.
func DeleteVolunteerCommentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Feedback.DeleteComment(r.Context(), chi.URLParam(r, "id"), claims.UserID()); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Comment deleted", nil)
	}
}

// IssueCertificateHandler handles POST /api/v1/admin/volunteers/{id}/certificates
func IssueCertificateHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateCertificateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.Feedback.IssueCertificate(r.Context(), chi.URLParam(r, "id"), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Certificate issued", view, http.StatusCreated)
	}
}

// ListCertificatesHandler handles GET /volunteers/{id}/certificates on the
// admin and organization areas.
func ListCertificatesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		views, err := deps.Services.Feedback.ListCertificates(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Certificates fetched", views)
	}
}

// DeleteCertificateHandler handles DELETE /certificates/{id} on the admin
// and organization areas.
func DeleteCertificateHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Feedback.DeleteCertificate(r.Context(), chi.URLParam(r, "id"), claims.UserID()); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Certificate deleted", nil)
	}
}

func (h *Handlers) AddVolunteerComment() http.HandlerFunc {
	return AddVolunteerCommentHandler(h.deps)
}
func (h *Handlers) ListVolunteerComments() http.HandlerFunc {
	return ListVolunteerCommentsHandler(h.deps)
}
func (h *Handlers) DeleteVolunteerComment() http.HandlerFunc {
	return DeleteVolunteerCommentHandler(h.deps)
}
func (h *Handlers) IssueCertificate() http.HandlerFunc  { return IssueCertificateHandler(h.deps) }
func (h *Handlers) ListCertificates() http.HandlerFunc  { return ListCertificatesHandler(h.deps) }
func (h *Handlers) DeleteCertificate() http.HandlerFunc { return DeleteCertificateHandler(h.deps) }
