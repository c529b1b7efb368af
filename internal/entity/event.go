package entity

import (
	"time"
)

type EventStatus string

const (
	StatusPaid           EventStatus = "paid"
	StatusPayWhatYouWant EventStatus = "pay_what_you_want"
	StatusFree           EventStatus = "free"
)

// StatusFromLabel normalizes the status label used in the Notion database.
// "Payant" is a fixed price, "Libre" is pay-what-you-want, anything else
// is treated as free.
func StatusFromLabel(label string) EventStatus {
	switch label {
	case "Payant":
		return StatusPaid
	case "Libre":
		return StatusPayWhatYouWant
	default:
		return StatusFree
	}
}

type Event struct {
	ID          int64       `json:"id" db:"id"`
	NotionID    string      `json:"notion_id" db:"notion_id"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
	Archived    bool        `json:"archived" db:"archived"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Price       *float64    `json:"price,omitempty" db:"price"`
	Status      EventStatus `json:"status" db:"status"`
	Date        *time.Time  `json:"date,omitempty" db:"date"`
	Duration    *string     `json:"duration,omitempty" db:"duration"`
	Location    *string     `json:"location,omitempty" db:"location"`
	LimitDate   *time.Time  `json:"limit_date,omitempty" db:"limit_date"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`

	// Participants holds user identities in RSVP order. Loaded from the
	// event_participants table, mutated only through ParticipationService.
	Participants []string `json:"participants"`
}
