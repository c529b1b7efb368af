package bot

import (
	"context"
	"errors"
	"strconv"

	"github.com/mleonec/notibot/internal/entity"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Component custom id prefixes; the part after ':' is the handler argument.
const (
	customIDAccept  = "rsvp_accept"
	customIDDecline = "rsvp_decline"
	customIDPage    = "events_page"
)

func (b *Bot) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate, notionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	user := interactionUser(i)
	if user == nil || notionID == "" {
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	confirmation, err := b.participation.Accept(ctx, notionID, user.ID)
	if errors.Is(err, entity.ErrEventNotFound) {
		b.respondEphemeral(s, i, "⚠️ Cet événement n'existe plus.")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to accept %s for event %s: %v", user.ID, notionID, err)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	b.respondEphemeral(s, i, confirmation)
}

func (b *Bot) handleDecline(s *discordgo.Session, i *discordgo.InteractionCreate, notionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	user := interactionUser(i)
	if user == nil || notionID == "" {
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	confirmation, err := b.participation.Decline(ctx, notionID, user.ID)
	if errors.Is(err, entity.ErrEventNotFound) {
		b.respondEphemeral(s, i, "⚠️ Cet événement n'existe plus.")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to decline %s for event %s: %v", user.ID, notionID, err)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	b.respondEphemeral(s, i, confirmation)
}

func (b *Bot) handleEventsPage(s *discordgo.Session, i *discordgo.InteractionCreate, arg string) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	page, err := strconv.Atoi(arg)
	if err != nil {
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	events, loadErr := b.events.GetAll(ctx)
	if loadErr != nil || len(events) == 0 {
		logrus.Errorf("Failed to load events for pagination: %v", loadErr)
		b.respondEphemeral(s, i, genericErrorMessage)
		return
	}

	// Swap the embed in place instead of posting a new message.
	respondErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: b.eventsPageData(ctx, events, page),
	})
	if respondErr != nil {
		logrus.Errorf("Failed to update events page: %v", respondErr)
	}
}
