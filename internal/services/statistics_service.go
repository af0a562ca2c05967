package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

const statsCacheTTL = 60 * time.Second

// StatisticsService assembles the admin dashboard overview. The six blocks
// are independent aggregates, so they are fetched concurrently and the
// assembled result is cached briefly to keep dashboard refreshes cheap.
type StatisticsService struct {
	stats *repositories.StatsRepository
	cache common.CacheInterface
}

func NewStatisticsService(stats *repositories.StatsRepository, cache common.CacheInterface) *StatisticsService {
	return &StatisticsService{stats: stats, cache: cache}
}

// Overview returns the dashboard blocks for the trailing rangeDays window.
func (s *StatisticsService) Overview(ctx context.Context, rangeDays int) (*dtos.StatisticsOverview, error) {
	if rangeDays < 1 || rangeDays > 365 {
		rangeDays = 30
	}

	key := fmt.Sprintf("stats:overview:%d", rangeDays)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			if overview, ok := cached.(*dtos.StatisticsOverview); ok {
				return overview, nil
			}
		}
	}

	overview, err := s.build(ctx, rangeDays)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, overview, statsCacheTTL)
	}
	return overview, nil
}

func (s *StatisticsService) build(ctx context.Context, rangeDays int) (*dtos.StatisticsOverview, error) {
	since := time.Now().AddDate(0, 0, -rangeDays)
	overview := &dtos.StatisticsOverview{
		RangeDays:   rangeDays,
		GeneratedAt: time.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := s.stats.UserStats(gctx, since)
		if err != nil {
			return err
		}
		overview.Users = *users
		return nil
	})
	g.Go(func() error {
		campaigns, err := s.stats.CampaignStats(gctx)
		if err != nil {
			return err
		}
		overview.Campaigns = *campaigns
		return nil
	})
	g.Go(func() error {
		requests, err := s.stats.HelpRequestStats(gctx)
		if err != nil {
			return err
		}
		overview.HelpRequests = *requests
		return nil
	})
	g.Go(func() error {
		regs, err := s.stats.RegistrationStats(gctx, since)
		if err != nil {
			return err
		}
		overview.Registrations = *regs
		return nil
	})
	g.Go(func() error {
		districts, err := s.stats.TopDistricts(gctx, 5)
		if err != nil {
			return err
		}
		overview.TopDistricts = districts
		return nil
	})
	g.Go(func() error {
		messages, err := s.stats.MessageVolume(gctx, since)
		if err != nil {
			return err
		}
		overview.Messages = *messages
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
