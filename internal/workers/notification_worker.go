package workers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/chat"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// NotificationWorker drains the notification stream and pushes each item to
// the recipient's live websocket connections. Items for offline users are
// acknowledged and dropped; the client reloads state on reconnect.
type NotificationWorker struct {
	consumerName string
	queue        *common.NotificationQueueService
	hub          *chat.Hub
}

func NewNotificationWorker(queue *common.NotificationQueueService, hub *chat.Hub) *NotificationWorker {
	host, _ := os.Hostname()
	return &NotificationWorker{
		consumerName: fmt.Sprintf("%s-%d", host, os.Getpid()),
		queue:        queue,
		hub:          hub,
	}
}

// Start consumes until the context is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	if err := w.queue.CreateConsumerGroup(ctx, constants.NotificationStream, constants.NotificationGroup); err != nil {
		log.Printf("[NotificationWorker] Warning - failed to create consumer group: %v", err)
	}

	log.Printf("[NotificationWorker] Started as consumer %s", w.consumerName)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[NotificationWorker] Stopped: %v", ctx.Err())
			return
		default:
		}

		item, msgID, err := w.queue.Dequeue(ctx, constants.NotificationStream,
			constants.NotificationGroup, w.consumerName, 5*time.Second)
		if err != nil {
			log.Printf("[NotificationWorker] Dequeue error: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}
		if item == nil {
			continue
		}

		w.deliver(item)

		if err := w.queue.Ack(ctx, constants.NotificationStream, constants.NotificationGroup, msgID); err != nil {
			log.Printf("[NotificationWorker] Ack error for %s: %v", msgID, err)
		}
	}
}

func (w *NotificationWorker) deliver(item *common.NotificationItem) {
	w.hub.SendToUser(item.RecipientID, dtos.ChatEvent{
		Event: "notification",
		Payload: map[string]any{
			"kind":      item.Kind,
			"title":     item.Title,
			"body":      item.Body,
			"createdAt": item.CreatedAt,
		},
	})
}
