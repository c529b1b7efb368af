package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/mleonec/notibot/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS notion_events (
			id SERIAL PRIMARY KEY,
			notion_id VARCHAR(255) UNIQUE NOT NULL,
			created_by VARCHAR(255),
			archived BOOLEAN DEFAULT FALSE,
			title VARCHAR(500) NOT NULL,
			description TEXT,
			price NUMERIC,
			status VARCHAR(50) NOT NULL DEFAULT 'free',
			date TIMESTAMPTZ,
			duration VARCHAR(255),
			location VARCHAR(500),
			limit_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS event_participants (
			id SERIAL PRIMARY KEY,
			notion_id VARCHAR(255) NOT NULL REFERENCES notion_events(notion_id) ON DELETE CASCADE,
			user_id VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (notion_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			discord_id VARCHAR(255) UNIQUE NOT NULL,
			notion_id VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_notion_events_date ON notion_events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_event_participants_notion_id ON event_participants(notion_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
