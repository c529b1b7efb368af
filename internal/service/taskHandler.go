package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/pkg/queue"
)

// TaskHandler consumes queued tasks and dispatches them by type.
type TaskHandler struct {
	eventRepo repository.EventRepository
	announcer Announcer
	timeout   time.Duration
}

func NewTaskHandler(eventRepo repository.EventRepository, announcer Announcer) *TaskHandler {
	return &TaskHandler{
		eventRepo: eventRepo,
		announcer: announcer,
		timeout:   30 * time.Second,
	}
}

func (h *TaskHandler) HandleTask(task *queue.Task) error {
	switch task.Type {
	case queue.TaskTypeAnnounceEvent:
		return h.handleAnnounceEvent(task)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

func (h *TaskHandler) handleAnnounceEvent(task *queue.Task) error {
	notionID, ok := task.Data["notion_id"].(string)
	if !ok || notionID == "" {
		return fmt.Errorf("invalid task data: missing notion_id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	event, err := h.eventRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", notionID, err)
	}

	return h.announcer.AnnounceEvent(ctx, event)
}
