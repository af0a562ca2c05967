package workers

import (
	"context"

	"github.com/CtIaMbaCK/betterus-server/internal/chat"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
)

type WorkersContainer struct {
	Notifications *NotificationWorker
}

// InitWorkers starts the background consumers.
func InitWorkers(ctx context.Context, queue *common.NotificationQueueService, hub *chat.Hub) *WorkersContainer {
	notifWorker := NewNotificationWorker(queue, hub)

	go notifWorker.Start(ctx)

	return &WorkersContainer{Notifications: notifWorker}
}
