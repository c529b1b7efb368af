package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mleonec/notibot/internal/entity"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.UserMapping) error {
	query := `
		INSERT INTO users (name, discord_id, notion_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.DiscordID,
		user.NotionID,
		time.Now(),
		time.Now(),
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrUserAlreadyRegistered
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*entity.UserMapping, error) {
	return r.getBy(ctx, "discord_id", discordID)
}

func (r *userRepository) GetByNotionID(ctx context.Context, notionID string) (*entity.UserMapping, error) {
	return r.getBy(ctx, "notion_id", notionID)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*entity.UserMapping, error) {
	query := fmt.Sprintf(`
		SELECT id, name, discord_id, notion_id, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	var user entity.UserMapping
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.DiscordID,
		&user.NotionID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, id int64, name string) error {
	query := `UPDATE users SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*entity.UserMapping, error) {
	query := `
		SELECT id, name, discord_id, notion_id, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}
	defer rows.Close()

	var users []*entity.UserMapping
	for rows.Next() {
		var user entity.UserMapping
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.DiscordID,
			&user.NotionID,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
