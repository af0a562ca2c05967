package jobs

import (
	"context"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/services"
)

// InitializeJobs initializes and starts all background jobs.
func InitializeJobs(ctx context.Context, campaigns *services.CampaignService) *CampaignStatusJob {
	statusJob := NewCampaignStatusJob(campaigns)

	// Campaign windows are day-granular; a minutely pass keeps listings
	// fresh without meaningful load.
	go statusJob.RunScheduled(ctx, 1*time.Minute)

	return statusJob
}
