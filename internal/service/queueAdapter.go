package service

import (
	"context"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/pkg/queue"
)

// QueueAnnouncer adapts queue.Queue to the Announcer interface: instead of
// delivering the notification itself, it enqueues an announce task that the
// queue consumer hands to the real announcer with retry and DLQ semantics.
type QueueAnnouncer struct {
	queue queue.Queue
}

func NewQueueAnnouncer(q queue.Queue) *QueueAnnouncer {
	return &QueueAnnouncer{queue: q}
}

func (a *QueueAnnouncer) AnnounceEvent(ctx context.Context, event *entity.Event) error {
	if a.queue == nil {
		return nil
	}

	task := &queue.Task{
		Type: queue.TaskTypeAnnounceEvent,
		Data: map[string]interface{}{
			"notion_id": event.NotionID,
		},
	}

	return a.queue.Publish(ctx, task)
}
