package queue

import (
	"context"
	"time"
)

const (
	// TaskTypeAnnounceEvent asks the consumer to announce one stored event
	// to the broadcast channel. Data carries the event's notion_id.
	TaskTypeAnnounceEvent = "event_announce"
)

// Task is one unit of work pushed through the queue.
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Queue is the transport between the reconciler and the announcer.
type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler func(*Task) error) error
	Close() error
}
