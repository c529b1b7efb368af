package entity

import "time"

// UserMapping links a Discord identity to a Notion person identity.
// Both sides are unique: one Discord account maps to exactly one Notion
// person and vice versa.
type UserMapping struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DiscordID string    `json:"discord_id" db:"discord_id"`
	NotionID  string    `json:"notion_id" db:"notion_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
