package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mleonec/notibot/internal/entity"

	"github.com/bwmarrin/discordgo"
)

const unknownCreatorLabel = "Inconnu"

// Embed colors per event status: red for paid, orange for pay-what-you-want,
// green for free.
const (
	colorPaid           = 0xE74C3C
	colorPayWhatYouWant = 0xE67E22
	colorFree           = 0x2ECC71
)

// eventEmbed renders one event. Absent optional fields are omitted rather
// than shown as placeholders, except the date which always gets a field.
func eventEmbed(event *entity.Event, creatorName string) *discordgo.MessageEmbed {
	title := event.Title
	if title == "" {
		title = "Pas de titre"
	}
	description := event.Description
	if description == "" {
		description = "Aucune description"
	}

	var color int
	var priceText string
	switch event.Status {
	case entity.StatusPaid:
		color = colorPaid
		if event.Price != nil {
			priceText = formatPrice(*event.Price) + " 💰"
		} else {
			priceText = "??? 💰"
		}
	case entity.StatusPayWhatYouWant:
		color = colorPayWhatYouWant
		priceText = "Prix libre 💰"
	default:
		color = colorFree
		priceText = "Gratuit 🎉"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📢 " + title,
		Description: description,
		Color:       color,
	}

	dateText := "Non précisée"
	if event.Date != nil {
		dateText = event.Date.Format("02/01/2006 15:04")
		embed.Timestamp = event.Date.Format(time.RFC3339)
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "📅 Date", Value: dateText, Inline: true},
		&discordgo.MessageEmbedField{Name: "💵 Prix", Value: priceText, Inline: true},
	)

	if event.Location != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "📍 Lieu", Value: *event.Location, Inline: true,
		})
	}
	if event.Duration != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⏱️ Durée", Value: *event.Duration, Inline: true,
		})
	}
	if event.LimitDate != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🗓️ Inscription avant", Value: event.LimitDate.Format("02/01/2006"), Inline: true,
		})
	}
	if n := len(event.Participants); n > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "👥 Participants", Value: strconv.Itoa(n), Inline: true,
		})
	}

	if creatorName == "" {
		creatorName = unknownCreatorLabel
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Créé par " + creatorName}

	return embed
}

func rsvpButtons(notionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Je participe ✅",
					Style:    discordgo.SuccessButton,
					CustomID: customIDAccept + ":" + notionID,
				},
				discordgo.Button{
					Label:    "Je passe ❌",
					Style:    discordgo.DangerButton,
					CustomID: customIDDecline + ":" + notionID,
				},
			},
		},
	}
}

func pagerButtons(page, total int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPage + ":" + strconv.Itoa(page-1),
					Disabled: page <= 0,
				},
				discordgo.Button{
					Label:    "▶",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPage + ":" + strconv.Itoa(page+1),
					Disabled: page >= total-1,
				},
			},
		},
	}
}

func pageHeader(page, total int) string {
	return fmt.Sprintf("Événement %d/%d", page+1, total)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64) + "€"
}
