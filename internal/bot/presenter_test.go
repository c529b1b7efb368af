package bot

import (
	"testing"
	"time"

	"github.com/mleonec/notibot/internal/entity"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(embed *discordgo.MessageEmbed) []string {
	names := make([]string, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	return names
}

func fieldValue(t *testing.T, embed *discordgo.MessageEmbed, name string) string {
	t.Helper()
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found", name)
	return ""
}

func TestEventEmbed_MinimalFreeEvent(t *testing.T) {
	embed := eventEmbed(&entity.Event{
		NotionID: "ev-1",
		Title:    "Apéro",
		Status:   entity.StatusFree,
	}, "")

	assert.Equal(t, "📢 Apéro", embed.Title)
	assert.Equal(t, "Aucune description", embed.Description)
	assert.Equal(t, colorFree, embed.Color)
	assert.Empty(t, embed.Timestamp)

	// Only the two mandatory fields, no placeholders for absent optionals.
	assert.Equal(t, []string{"📅 Date", "💵 Prix"}, fieldNames(embed))
	assert.Equal(t, "Non précisée", fieldValue(t, embed, "📅 Date"))
	assert.Equal(t, "Gratuit 🎉", fieldValue(t, embed, "💵 Prix"))

	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Créé par Inconnu", embed.Footer.Text)
}

func TestEventEmbed_FullPaidEvent(t *testing.T) {
	price := 25.0
	date := time.Date(2026, time.September, 12, 19, 30, 0, 0, time.UTC)
	limit := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	location := "Le Dernier Bar"
	duration := "3h"

	embed := eventEmbed(&entity.Event{
		NotionID:     "ev-1",
		Title:        "Escape game",
		Description:  "On se retrouve au bar",
		Status:       entity.StatusPaid,
		Price:        &price,
		Date:         &date,
		LimitDate:    &limit,
		Location:     &location,
		Duration:     &duration,
		Participants: []string{"u1", "u2", "u3"},
	}, "Léa")

	assert.Equal(t, colorPaid, embed.Color)
	assert.Equal(t, "On se retrouve au bar", embed.Description)
	assert.Equal(t, date.Format(time.RFC3339), embed.Timestamp)

	assert.Equal(t, "12/09/2026 19:30", fieldValue(t, embed, "📅 Date"))
	assert.Equal(t, "25€ 💰", fieldValue(t, embed, "💵 Prix"))
	assert.Equal(t, "Le Dernier Bar", fieldValue(t, embed, "📍 Lieu"))
	assert.Equal(t, "3h", fieldValue(t, embed, "⏱️ Durée"))
	assert.Equal(t, "10/09/2026", fieldValue(t, embed, "🗓️ Inscription avant"))
	assert.Equal(t, "3", fieldValue(t, embed, "👥 Participants"))

	assert.Equal(t, "Créé par Léa", embed.Footer.Text)
}

func TestEventEmbed_PriceText(t *testing.T) {
	price := 12.5

	tests := []struct {
		name     string
		event    *entity.Event
		expected string
		color    int
	}{
		{
			name:     "paid with price",
			event:    &entity.Event{Title: "t", Status: entity.StatusPaid, Price: &price},
			expected: "12.5€ 💰",
			color:    colorPaid,
		},
		{
			name:     "paid without price",
			event:    &entity.Event{Title: "t", Status: entity.StatusPaid},
			expected: "??? 💰",
			color:    colorPaid,
		},
		{
			name:     "pay what you want",
			event:    &entity.Event{Title: "t", Status: entity.StatusPayWhatYouWant},
			expected: "Prix libre 💰",
			color:    colorPayWhatYouWant,
		},
		{
			name:     "free",
			event:    &entity.Event{Title: "t", Status: entity.StatusFree},
			expected: "Gratuit 🎉",
			color:    colorFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := eventEmbed(tt.event, "x")
			assert.Equal(t, tt.expected, fieldValue(t, embed, "💵 Prix"))
			assert.Equal(t, tt.color, embed.Color)
		})
	}
}

func TestEventEmbed_EmptyTitleFallback(t *testing.T) {
	embed := eventEmbed(&entity.Event{Status: entity.StatusFree}, "x")
	assert.Equal(t, "📢 Pas de titre", embed.Title)
}

func TestRsvpButtons(t *testing.T) {
	components := rsvpButtons("ev-1")
	require.Len(t, components, 1)

	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	accept, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "rsvp_accept:ev-1", accept.CustomID)
	assert.Equal(t, discordgo.SuccessButton, accept.Style)

	decline, ok := row.Components[1].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "rsvp_decline:ev-1", decline.CustomID)
	assert.Equal(t, discordgo.DangerButton, decline.Style)
}

func TestPagerButtons(t *testing.T) {
	tests := []struct {
		name         string
		page, total  int
		prevDisabled bool
		nextDisabled bool
	}{
		{"first page", 0, 3, true, false},
		{"middle page", 1, 3, false, false},
		{"last page", 2, 3, false, true},
		{"single page", 0, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := pagerButtons(tt.page, tt.total)
			require.Len(t, components, 1)

			row, ok := components[0].(discordgo.ActionsRow)
			require.True(t, ok)
			require.Len(t, row.Components, 2)

			prev := row.Components[0].(discordgo.Button)
			next := row.Components[1].(discordgo.Button)

			assert.Equal(t, tt.prevDisabled, prev.Disabled)
			assert.Equal(t, tt.nextDisabled, next.Disabled)
		})
	}
}

func TestPageHeader(t *testing.T) {
	assert.Equal(t, "Événement 1/3", pageHeader(0, 3))
	assert.Equal(t, "Événement 3/3", pageHeader(2, 3))
}
