package repository

import (
	"context"
	"errors"

	"github.com/mleonec/notibot/internal/entity"

	"github.com/lib/pq"
)

type EventRepository interface {
	// Create inserts the event and its initial participant list in one
	// transaction. Returns entity.ErrEventAlreadyExists if the notion_id
	// is already stored.
	Create(ctx context.Context, event *entity.Event) error
	GetByNotionID(ctx context.Context, notionID string) (*entity.Event, error)
	GetLatest(ctx context.Context) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	KnownIDs(ctx context.Context) (map[string]struct{}, error)

	// Participant operations. Both are single-statement point mutations:
	// add is idempotent via ON CONFLICT DO NOTHING, remove is a no-op when
	// the row is absent.
	AddParticipant(ctx context.Context, notionID, userID string) error
	RemoveParticipant(ctx context.Context, notionID, userID string) error
	GetParticipants(ctx context.Context, notionID string) ([]string, error)
}

type UserRepository interface {
	// Create returns entity.ErrUserAlreadyRegistered if either the Discord
	// or the Notion identity is already mapped.
	Create(ctx context.Context, user *entity.UserMapping) error
	GetByDiscordID(ctx context.Context, discordID string) (*entity.UserMapping, error)
	GetByNotionID(ctx context.Context, notionID string) (*entity.UserMapping, error)
	UpdateName(ctx context.Context, id int64, name string) error
	GetAll(ctx context.Context) ([]*entity.UserMapping, error)
}

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
