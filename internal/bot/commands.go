package bot

import (
	"context"
	"errors"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const noEventMessage = "Pas d'événement la chef..."

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "event",
		Description: "Afficher le dernier événement Notion",
	},
	{
		Name:        "events",
		Description: "Parcourir tous les événements",
	},
	{
		Name:        "register",
		Description: "Lier ton compte Discord à ton identifiant Notion",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "notion_id",
				Description: "Ton identifiant Notion",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "nom",
				Description: "Nom affiché (par défaut ton pseudo Discord)",
				Required:    false,
			},
		},
	},
}

func (b *Bot) handleEventCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	event, err := b.events.GetLatest(ctx)
	if errors.Is(err, entity.ErrEventNotFound) {
		b.respond(s, i, &discordgo.InteractionResponseData{Content: noEventMessage})
		return
	}
	if err != nil {
		logrus.Errorf("Failed to load latest event: %v", err)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	b.respond(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{eventEmbed(event, b.resolveCreator(ctx, event))},
		Components: rsvpButtons(event.NotionID),
	})
}

func (b *Bot) handleEventsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	events, err := b.events.GetAll(ctx)
	if err != nil {
		logrus.Errorf("Failed to load events: %v", err)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}
	if len(events) == 0 {
		b.respond(s, i, &discordgo.InteractionResponseData{Content: noEventMessage})
		return
	}

	b.respond(s, i, b.eventsPageData(ctx, events, 0))
}

// eventsPageData renders one page of the event list. The page index lives
// in the pager buttons' custom ids, not in any per-message server state.
func (b *Bot) eventsPageData(ctx context.Context, events []*entity.Event, page int) *discordgo.InteractionResponseData {
	if page < 0 {
		page = 0
	}
	if page >= len(events) {
		page = len(events) - 1
	}
	event := events[page]

	components := pagerButtons(page, len(events))
	components = append(components, rsvpButtons(event.NotionID)...)

	return &discordgo.InteractionResponseData{
		Content:    pageHeader(page, len(events)),
		Embeds:     []*discordgo.MessageEmbed{eventEmbed(event, b.resolveCreator(ctx, event))},
		Components: components,
	}
}

func (b *Bot) handleRegisterCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	user := interactionUser(i)
	if user == nil {
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	var notionID, name string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "notion_id":
			notionID = opt.StringValue()
		case "nom":
			name = opt.StringValue()
		}
	}
	if name == "" {
		name = user.Username
	}

	_, err := b.users.Register(ctx, &service.RegisterRequest{
		DiscordID: user.ID,
		NotionID:  notionID,
		Name:      name,
	})
	if errors.Is(err, entity.ErrUserAlreadyRegistered) {
		b.respondEphemeral(s, i, "⚠️ Ce compte Discord ou cet identifiant Notion est déjà enregistré.")
		return
	}
	if errors.Is(err, entity.ErrInvalidInput) {
		b.respondEphemeral(s, i, "⚠️ Identifiant Notion invalide.")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to register user %s: %v", user.ID, err)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	b.respondEphemeral(s, i, "✅ Enregistrement réussi, bienvenue **"+name+"** !")
}
