package api

import (
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/chat"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/config"
	"github.com/CtIaMbaCK/betterus-server/internal/db"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/services"
	"github.com/CtIaMbaCK/betterus-server/internal/storage"
)

type Repositories struct {
	Users        *repositories.UserRepository
	Campaigns    *repositories.CampaignRepository
	HelpRequests *repositories.HelpRequestRepository
	Chats        *repositories.ChatRepository
	Feedback     *repositories.FeedbackRepository
	Stats        *repositories.StatsRepository
}

type Services struct {
	Cache         common.CacheInterface
	Session       *common.SessionService
	Notifications *common.NotificationQueueService
	Tokens        *auth.TokenManager

	Accounts     *services.AccountService
	UserAdmin    *services.UserAdminService
	Campaigns    *services.CampaignService
	HelpRequests *services.HelpRequestService
	Chat         *services.ChatService
	Feedback     *services.FeedbackService
	Statistics   *services.StatisticsService

	Files *storage.FileStore
	Hub   *chat.Hub
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services against the shared
// database handles and the Redis client. The chat hub is created but not
// started; the router starts its run loop.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Users:        repositories.NewUserRepository(db.PgDB),
		Campaigns:    repositories.NewCampaignRepository(db.PgDB),
		HelpRequests: repositories.NewHelpRequestRepository(db.PgDB),
		Chats:        repositories.NewChatRepository(db.PgDB),
		Feedback:     repositories.NewFeedbackRepository(db.PgDB),
		Stats:        repositories.NewStatsRepository(db.DB),
	}

	redisClient := common.NewRedisClient()

	// CACHE_BACKEND=memory keeps local development free of a Redis
	// dependency for the cache; sessions and the notification stream still
	// need Redis.
	var cacheSvc common.CacheInterface
	if config.StrEnv("CACHE_BACKEND", "redis") == "memory" {
		cacheSvc = common.NewCacheService(60, 600)
	} else {
		cacheSvc = common.NewRedisCacheService(redisClient)
	}

	sessionSvc := common.NewSessionService(redisClient)
	notificationSvc := common.NewNotificationQueueService(redisClient)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(config.IntEnv("JWT_TTL_HOURS", 24))*time.Hour)

	chatSvc := services.NewChatService(repos.Chats, repos.Users, notificationSvc, metricsReg)

	svcs := &Services{
		Cache:         cacheSvc,
		Session:       sessionSvc,
		Notifications: notificationSvc,
		Tokens:        tokens,

		Accounts:     services.NewAccountService(repos.Users, tokens, metricsReg),
		UserAdmin:    services.NewUserAdminService(repos.Users),
		Campaigns:    services.NewCampaignService(repos.Campaigns, repos.Users, notificationSvc),
		HelpRequests: services.NewHelpRequestService(repos.HelpRequests, repos.Users, notificationSvc, metricsReg),
		Chat:         chatSvc,
		Feedback:     services.NewFeedbackService(repos.Feedback, repos.Users),
		Statistics:   services.NewStatisticsService(repos.Stats, cacheSvc),

		Files: storage.NewFileStore(cfg.UploadsDir, cfg.PublicBaseURL),
		Hub:   chat.NewHub(chatSvc, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
