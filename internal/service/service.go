package service

import (
	"context"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/pkg/notion"
)

// EventSource is the external system of record for event definitions.
// Implemented by *notion.Client.
type EventSource interface {
	QueryEvents(ctx context.Context, since string, pageSize int) ([]notion.Page, error)
}

// Announcer delivers one new-event notification to the broadcast channel.
// Implemented by the Discord bot directly or by the queue adapter when a
// Redis queue is configured.
type Announcer interface {
	AnnounceEvent(ctx context.Context, event *entity.Event) error
}

// SyncService runs reconciliation cycles against the event source.
type SyncService interface {
	Sync(ctx context.Context) (*SyncReport, error)
}

// ParticipationService records a user's intent to attend an event. Both
// operations are idempotent and return the user-facing confirmation text.
type ParticipationService interface {
	Accept(ctx context.Context, notionID, userID string) (string, error)
	Decline(ctx context.Context, notionID, userID string) (string, error)
}

// EventService is the read side used by the bot commands and the admin API.
type EventService interface {
	GetLatest(ctx context.Context) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	GetByNotionID(ctx context.Context, notionID string) (*entity.Event, error)
	GetParticipants(ctx context.Context, notionID string) ([]string, error)
}

// UserService maintains the Discord <-> Notion identity directory.
type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.UserMapping, error)
	ResolveDisplayName(ctx context.Context, notionID string) string
	ResolveDiscordID(ctx context.Context, notionID string) (string, bool)
	GetAllUsers(ctx context.Context) ([]*entity.UserMapping, error)
}

// RegisterRequest carries one identity-mapping registration.
type RegisterRequest struct {
	DiscordID string `json:"discord_id" binding:"required"`
	NotionID  string `json:"notion_id" binding:"required"`
	Name      string `json:"name" binding:"required,min=1,max=255"`
}
