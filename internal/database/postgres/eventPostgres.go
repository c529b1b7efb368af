package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mleonec/notibot/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, notion_id, created_by, archived, title, description, price,
		status, date, duration, location, limit_date, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO notion_events (notion_id, created_by, archived, title, description,
			price, status, date, duration, location, limit_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err = tx.QueryRowContext(ctx, query,
		event.NotionID,
		event.CreatedBy,
		event.Archived,
		event.Title,
		event.Description,
		event.Price,
		event.Status,
		event.Date,
		event.Duration,
		event.Location,
		event.LimitDate,
		time.Now(),
		time.Now(),
	).Scan(&event.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEventAlreadyExists
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}

	// Participants already present on the Notion side at first observation
	// are stored in source order.
	for _, userID := range event.Participants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event_participants (notion_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (notion_id, user_id) DO NOTHING
		`, event.NotionID, userID)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByNotionID(ctx context.Context, notionID string) (*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM notion_events
		WHERE notion_id = $1
	`

	event, err := r.scanEvent(r.db.QueryRowContext(ctx, query, notionID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	event.Participants, err = r.GetParticipants(ctx, event.NotionID)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (r *eventRepository) GetLatest(ctx context.Context) (*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM notion_events
		ORDER BY date DESC NULLS LAST, id DESC
		LIMIT 1
	`

	event, err := r.scanEvent(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	event.Participants, err = r.GetParticipants(ctx, event.NotionID)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM notion_events
		ORDER BY date DESC NULLS LAST, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	byID := make(map[string]*entity.Event)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
		byID[event.NotionID] = event
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	// Attach participant lists with a single pass, keeping RSVP order.
	pRows, err := r.db.QueryContext(ctx, `
		SELECT notion_id, user_id
		FROM event_participants
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer pRows.Close()

	for pRows.Next() {
		var notionID, userID string
		if err := pRows.Scan(&notionID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if event, ok := byID[notionID]; ok {
			event.Participants = append(event.Participants, userID)
		}
	}

	return events, pRows.Err()
}

func (r *eventRepository) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT notion_id FROM notion_events`)
	if err != nil {
		return nil, fmt.Errorf("failed to query known ids: %w", err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan notion id: %w", err)
		}
		known[id] = struct{}{}
	}

	return known, rows.Err()
}

func (r *eventRepository) AddParticipant(ctx context.Context, notionID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_participants (notion_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (notion_id, user_id) DO NOTHING
	`, notionID, userID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrEventNotFound
		}
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, notionID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM event_participants
		WHERE notion_id = $1 AND user_id = $2
	`, notionID, userID)

	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	return nil
}

func (r *eventRepository) GetParticipants(ctx context.Context, notionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id
		FROM event_participants
		WHERE notion_id = $1
		ORDER BY id ASC
	`, notionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, userID)
	}

	return participants, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *eventRepository) scanEvent(row rowScanner) (*entity.Event, error) {
	var (
		event       entity.Event
		createdBy   sql.NullString
		description sql.NullString
		price       sql.NullFloat64
		date        sql.NullTime
		duration    sql.NullString
		location    sql.NullString
		limitDate   sql.NullTime
	)

	err := row.Scan(
		&event.ID,
		&event.NotionID,
		&createdBy,
		&event.Archived,
		&event.Title,
		&description,
		&price,
		&event.Status,
		&date,
		&duration,
		&location,
		&limitDate,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.CreatedBy = createdBy.String
	event.Description = description.String
	if price.Valid {
		event.Price = &price.Float64
	}
	if date.Valid {
		event.Date = &date.Time
	}
	if duration.Valid {
		event.Duration = &duration.String
	}
	if location.Valid {
		event.Location = &location.String
	}
	if limitDate.Valid {
		event.LimitDate = &limitDate.Time
	}

	return &event, nil
}
