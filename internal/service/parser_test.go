package service

import (
	"testing"
	"time"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titleProp(text string) notion.PropertyValue {
	return notion.PropertyValue{
		Type:  "title",
		Title: []notion.RichText{{PlainText: text}},
	}
}

func richTextProp(text string) notion.PropertyValue {
	return notion.PropertyValue{
		Type:     "rich_text",
		RichText: []notion.RichText{{PlainText: text}},
	}
}

func TestParseEvent_FullPage(t *testing.T) {
	price := 25.0
	page := &notion.Page{
		ID:        "page-1",
		CreatedBy: notion.User{ID: "notion-user-1"},
		Properties: map[string]notion.PropertyValue{
			"Name":        titleProp("Soirée jeux"),
			"Description": richTextProp("On se retrouve au bar"),
			"Prix":        {Type: "number", Number: &price},
			"Type":        {Type: "status", Status: &notion.StatusValue{Name: "Payant"}},
			"Date":        {Type: "date", Date: &notion.DateValue{Start: "2026-09-12T19:30:00.000+02:00"}},
			"Durée":       richTextProp("3h"),
			"Lieu":        richTextProp("Le Dernier Bar"),
			"Date limite choix de participation": {Type: "date", Date: &notion.DateValue{Start: "2026-09-10"}},
			"Participants": {Type: "people", People: []notion.User{{ID: "notion-user-2"}, {ID: "notion-user-3"}}},
		},
	}

	event, err := ParseEvent(page)
	require.NoError(t, err)

	assert.Equal(t, "page-1", event.NotionID)
	assert.Equal(t, "notion-user-1", event.CreatedBy)
	assert.Equal(t, "Soirée jeux", event.Title)
	assert.Equal(t, "On se retrouve au bar", event.Description)
	assert.Equal(t, entity.StatusPaid, event.Status)

	require.NotNil(t, event.Price)
	assert.Equal(t, 25.0, *event.Price)

	require.NotNil(t, event.Date)
	assert.Equal(t, 2026, event.Date.Year())
	assert.Equal(t, time.September, event.Date.Month())

	require.NotNil(t, event.Duration)
	assert.Equal(t, "3h", *event.Duration)
	require.NotNil(t, event.Location)
	assert.Equal(t, "Le Dernier Bar", *event.Location)
	require.NotNil(t, event.LimitDate)
	assert.Equal(t, 10, event.LimitDate.Day())

	assert.Equal(t, []string{"notion-user-2", "notion-user-3"}, event.Participants)
}

func TestParseEvent_MinimalPage(t *testing.T) {
	page := &notion.Page{
		ID: "page-2",
		Properties: map[string]notion.PropertyValue{
			"Name": titleProp("Apéro"),
		},
	}

	event, err := ParseEvent(page)
	require.NoError(t, err)

	assert.Equal(t, "page-2", event.NotionID)
	assert.Equal(t, "Apéro", event.Title)
	assert.Empty(t, event.Description)
	assert.Equal(t, entity.StatusFree, event.Status)
	assert.Nil(t, event.Price)
	assert.Nil(t, event.Date)
	assert.Nil(t, event.Duration)
	assert.Nil(t, event.Location)
	assert.Nil(t, event.LimitDate)
	assert.Empty(t, event.Participants)
}

func TestParseEvent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		page *notion.Page
	}{
		{
			name: "missing page id",
			page: &notion.Page{
				Properties: map[string]notion.PropertyValue{"Name": titleProp("Titre")},
			},
		},
		{
			name: "missing title property",
			page: &notion.Page{
				ID:         "page-3",
				Properties: map[string]notion.PropertyValue{},
			},
		},
		{
			name: "empty title",
			page: &notion.Page{
				ID: "page-4",
				Properties: map[string]notion.PropertyValue{
					"Name": {Type: "title", Title: []notion.RichText{}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent(tt.page)
			assert.Nil(t, event)
			assert.ErrorIs(t, err, entity.ErrMalformedRecord)
		})
	}
}

func TestParseEvent_StatusLabels(t *testing.T) {
	tests := []struct {
		label    string
		expected entity.EventStatus
	}{
		{"Payant", entity.StatusPaid},
		{"Libre", entity.StatusPayWhatYouWant},
		{"", entity.StatusFree},
		{"n'importe quoi", entity.StatusFree},
	}

	for _, tt := range tests {
		page := &notion.Page{
			ID: "page-status",
			Properties: map[string]notion.PropertyValue{
				"Name": titleProp("Titre"),
				"Type": {Type: "status", Status: &notion.StatusValue{Name: tt.label}},
			},
		}

		event, err := ParseEvent(page)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, event.Status, "label %q", tt.label)
	}
}

func TestParseEvent_BareDate(t *testing.T) {
	page := &notion.Page{
		ID: "page-5",
		Properties: map[string]notion.PropertyValue{
			"Name": titleProp("Titre"),
			"Date": {Type: "date", Date: &notion.DateValue{Start: "2026-03-01"}},
		},
	}

	event, err := ParseEvent(page)
	require.NoError(t, err)

	require.NotNil(t, event.Date)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *event.Date)
}

func TestParseEvent_UnparseableDateIgnored(t *testing.T) {
	page := &notion.Page{
		ID: "page-6",
		Properties: map[string]notion.PropertyValue{
			"Name": titleProp("Titre"),
			"Date": {Type: "date", Date: &notion.DateValue{Start: "demain"}},
		},
	}

	event, err := ParseEvent(page)
	require.NoError(t, err)
	assert.Nil(t, event.Date)
}
