package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/services"
)

// respondServiceError maps service-layer errors onto the response envelope
// with the right status code. Unknown errors become opaque 500s so internal
// details never leak to the client.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var verr *services.ValidationError
	var terr *services.TransitionError

	switch {
	case errors.As(err, &verr):
		common.RespondError(w, initTime, verr, "Validation failed", http.StatusBadRequest)
	case errors.As(err, &terr):
		common.RespondError(w, initTime, terr, "Illegal status transition", http.StatusConflict)
	case errors.Is(err, services.ErrNotFound):
		common.RespondError(w, initTime, err, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrEmailTaken):
		common.RespondError(w, initTime, err, "Email already registered", http.StatusConflict)
	case errors.Is(err, services.ErrBadPassword):
		common.RespondError(w, initTime, err, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		common.RespondError(w, initTime, err, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrNoChanges):
		common.RespondError(w, initTime, err, "Nothing to update", http.StatusBadRequest)
	case errors.Is(err, services.ErrProfileStage):
		common.RespondError(w, initTime, err, "Profile already completed", http.StatusConflict)
	case errors.Is(err, repositories.ErrCampaignFull):
		common.RespondError(w, initTime, err, "Campaign is full", http.StatusConflict)
	case errors.Is(err, repositories.ErrAlreadyRegistered):
		common.RespondError(w, initTime, err, "Already registered", http.StatusConflict)
	default:
		common.RespondError(w, initTime, nil, "Internal server error", http.StatusInternalServerError)
	}
}

// listQueryFromRequest parses the common list filters off the query string.
func listQueryFromRequest(r *http.Request) dtos.ListQuery {
	q := dtos.ListQuery{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		District: r.URL.Query().Get("district"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = limit
	}
	q.Normalize()
	return q
}
