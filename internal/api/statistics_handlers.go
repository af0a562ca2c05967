package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/reports"
)

// StatisticsOverviewHandler handles GET /api/v1/admin/statistics?rangeDays=30
func StatisticsOverviewHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rangeDays, _ := strconv.Atoi(r.URL.Query().Get("rangeDays"))

		overview, err := deps.Services.Statistics.Overview(r.Context(), rangeDays)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Statistics fetched", overview)
	}
}

// StatisticsReportHandler handles GET /api/v1/admin/statistics/report
//
// Renders the overview as a printable HTML page instead of the JSON
// envelope.
func StatisticsReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rangeDays, _ := strconv.Atoi(r.URL.Query().Get("rangeDays"))

		overview, err := deps.Services.Statistics.Overview(r.Context(), rangeDays)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := reports.WriteOverview(w, overview); err != nil {
			logging.Error("Report render failed", "error", err.Error())
		}
	}
}

func (h *Handlers) StatisticsOverview() http.HandlerFunc {
	return StatisticsOverviewHandler(h.deps)
}
func (h *Handlers) StatisticsReport() http.HandlerFunc { return StatisticsReportHandler(h.deps) }
