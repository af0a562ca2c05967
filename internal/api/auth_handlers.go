package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/middleware"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// RegisterHandler handles POST /api/v1/auth/register
//
// Step 1 of registration: role and credentials. The account starts PENDING
// and the returned token authorizes the profile-completion step.
func RegisterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		resp, err := deps.Services.Accounts.Register(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Account created", resp, http.StatusCreated)
	}
}

// CompleteProfileHandler handles POST /api/v1/auth/complete-profile
func CompleteProfileHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CompleteProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		view, err := deps.Services.Accounts.CompleteProfile(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile completed", view)
	}
}

// LoginHandler handles POST /api/v1/auth/login
//
// Returns a bearer token and, for browser clients, sets the session cookie
// used by the admin/home area.
func LoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		resp, err := deps.Services.Accounts.Login(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		sessionID, err := deps.Services.Session.CreateSession(r.Context(),
			resp.User.ID, constants.UserRole(resp.User.Role), resp.User.Email)
		if err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     middleware.SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   7 * 24 * 60 * 60,
			})
		}

		common.RespondSuccess(w, initTime, "Signed in", resp)
	}
}

// LogoutHandler handles POST /api/v1/auth/logout
func LogoutHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
			_ = deps.Services.Session.DeleteSession(r.Context(), cookie.Value)
			http.SetCookie(w, &http.Cookie{
				Name:     middleware.SessionCookieName,
				Value:    "",
				Path:     "/",
				HttpOnly: true,
				MaxAge:   -1,
			})
		}

		common.RespondSuccess(w, initTime, "Signed out", nil)
	}
}

// MeHandler handles GET /api/v1/auth/me
func MeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		view, err := deps.Services.Accounts.GetMe(r.Context(), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Account fetched", view)
	}
}

func (h *Handlers) Register() http.HandlerFunc        { return RegisterHandler(h.deps) }
func (h *Handlers) CompleteProfile() http.HandlerFunc { return CompleteProfileHandler(h.deps) }
func (h *Handlers) Login() http.HandlerFunc           { return LoginHandler(h.deps) }
func (h *Handlers) Logout() http.HandlerFunc          { return LogoutHandler(h.deps) }
func (h *Handlers) Me() http.HandlerFunc              { return MeHandler(h.deps) }
