package jobs

import (
	"context"
	"log"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/services"
)

// CampaignStatusJob rolls campaign statuses forward on the clock: PUBLISHED
// campaigns whose start date has arrived become ONGOING, ONGOING campaigns
// past their end date become COMPLETED.
type CampaignStatusJob struct {
	campaigns *services.CampaignService
}

func NewCampaignStatusJob(campaigns *services.CampaignService) *CampaignStatusJob {
	return &CampaignStatusJob{campaigns: campaigns}
}

// Run executes one pass.
func (j *CampaignStatusJob) Run(ctx context.Context) error {
	start := time.Now()

	changed, err := j.campaigns.RollStatuses(ctx, start)
	if err != nil {
		log.Printf("[CampaignStatusJob] Error rolling statuses: %v", err)
		return err
	}

	if changed > 0 {
		log.Printf("[CampaignStatusJob] Advanced %d campaigns in %s",
			changed, time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

// RunScheduled runs the job immediately and then on every tick until the
// context is cancelled.
func (j *CampaignStatusJob) RunScheduled(ctx context.Context, interval time.Duration) {
	log.Printf("[CampaignStatusJob] Scheduled every %s", interval)

	_ = j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[CampaignStatusJob] Stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}
