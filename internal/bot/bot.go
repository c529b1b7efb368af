package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mleonec/notibot/config"
	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const (
	interactionTimeout = 10 * time.Second

	// genericErrorMessage is the answer of last resort: every interaction
	// gets a response, even when the backend fails.
	genericErrorMessage = "❌ Une erreur est survenue, réessaie plus tard."
)

type Bot struct {
	session       *discordgo.Session
	events        service.EventService
	users         service.UserService
	participation service.ParticipationService
	channelID     string
	guildID       string

	commandHandlers   map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	componentHandlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, arg string)
}

func New(
	cfg *config.DiscordConfig,
	events service.EventService,
	users service.UserService,
	participation service.ParticipationService,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		session:       session,
		events:        events,
		users:         users,
		participation: participation,
		channelID:     cfg.ChannelID,
		guildID:       cfg.GuildID,
	}

	b.commandHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"event":    b.handleEventCommand,
		"events":   b.handleEventsCommand,
		"register": b.handleRegisterCommand,
	}
	b.componentHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, arg string){
		customIDAccept:  b.handleAccept,
		customIDDecline: b.handleDecline,
		customIDPage:    b.handleEventsPage,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logrus.Infof("Discord session ready as %s", r.User.Username)

	_, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, commands)
	if err != nil {
		logrus.Errorf("Failed to register slash commands: %v", err)
		return
	}
	logrus.Infof("Registered %d slash commands", len(commands))
}

// onInteraction dispatches slash commands by name and message components by
// custom id prefix. The argument part of the custom id carries per-request
// state (event id or page index).
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		handler, ok := b.commandHandlers[name]
		if !ok {
			logrus.Warnf("No handler for command %q", name)
			b.respondEphemeral(s, i, genericErrorMessage)
			return
		}
		handler(s, i)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		prefix, arg, _ := strings.Cut(customID, ":")
		handler, ok := b.componentHandlers[prefix]
		if !ok {
			logrus.Warnf("No handler for component %q", customID)
			b.respondEphemeral(s, i, genericErrorMessage)
			return
		}
		handler(s, i, arg)
	}
}

// AnnounceEvent pushes one new-event embed with RSVP buttons to the
// configured broadcast channel.
func (b *Bot) AnnounceEvent(ctx context.Context, event *entity.Event) error {
	creator := b.resolveCreator(ctx, event)

	_, err := b.session.ChannelMessageSendComplex(b.channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{eventEmbed(event, creator)},
		Components: rsvpButtons(event.NotionID),
	})
	if err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}

	return nil
}

func (b *Bot) resolveCreator(ctx context.Context, event *entity.Event) string {
	if event.CreatedBy == "" {
		return unknownCreatorLabel
	}
	return b.users.ResolveDisplayName(ctx, event.CreatedBy)
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logrus.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	b.respond(s, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}
