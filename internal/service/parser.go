package service

import (
	"fmt"
	"time"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/pkg/notion"
)

// Property names of the Notion event database (the database is French).
const (
	propTitle        = "Name"
	propDescription  = "Description"
	propPrice        = "Prix"
	propDate         = "Date"
	propParticipants = "Participants"
	propStatus       = "Type"
	propDuration     = "Durée"
	propLocation     = "Lieu"
	propLimitDate    = "Date limite choix de participation"
)

// ParseEvent converts one raw Notion page into an Event. The page id and a
// non-empty title are required; every other property degrades to its zero
// or nil value when absent. A missing required field yields an error
// wrapping entity.ErrMalformedRecord so the reconciler can skip the record.
func ParseEvent(page *notion.Page) (*entity.Event, error) {
	if page.ID == "" {
		return nil, fmt.Errorf("%w: missing page id", entity.ErrMalformedRecord)
	}

	title := richTextOf(page, propTitle)
	if title == "" {
		return nil, fmt.Errorf("%w: page %s has no title", entity.ErrMalformedRecord, page.ID)
	}

	event := &entity.Event{
		NotionID:    page.ID,
		CreatedBy:   page.CreatedBy.ID,
		Archived:    page.Archived,
		Title:       title,
		Description: richTextOf(page, propDescription),
		Status:      entity.StatusFromLabel(statusOf(page)),
		Date:        dateOf(page, propDate),
		LimitDate:   dateOf(page, propLimitDate),
	}

	if prop, ok := page.Properties[propPrice]; ok && prop.Number != nil {
		price := *prop.Number
		event.Price = &price
	}

	if s := richTextOf(page, propDuration); s != "" {
		event.Duration = &s
	}
	if s := richTextOf(page, propLocation); s != "" {
		event.Location = &s
	}

	if prop, ok := page.Properties[propParticipants]; ok {
		for _, person := range prop.People {
			event.Participants = append(event.Participants, person.ID)
		}
	}

	return event, nil
}

func richTextOf(page *notion.Page, name string) string {
	prop, ok := page.Properties[name]
	if !ok {
		return ""
	}
	if len(prop.Title) > 0 {
		return notion.Plain(prop.Title)
	}
	return notion.Plain(prop.RichText)
}

func statusOf(page *notion.Page) string {
	prop, ok := page.Properties[propStatus]
	if !ok || prop.Status == nil {
		return ""
	}
	return prop.Status.Name
}

func dateOf(page *notion.Page, name string) *time.Time {
	prop, ok := page.Properties[name]
	if !ok || prop.Date == nil || prop.Date.Start == "" {
		return nil
	}
	t, err := parseNotionTime(prop.Date.Start)
	if err != nil {
		return nil
	}
	return &t
}

// Notion date values come either as a bare date or as RFC 3339 with offset.
func parseNotionTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
