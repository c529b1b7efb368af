package service

import (
	"context"
	"fmt"
	"strconv"

	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/internal/entity"
)

// fallbackOrganizer is used in payment reminders when the event creator's
// Notion identity is not registered in the user directory.
const fallbackOrganizer = "l'organisateur"

type participationService struct {
	eventRepo repository.EventRepository
	users     UserService
}

func NewParticipationService(eventRepo repository.EventRepository, users UserService) ParticipationService {
	return &participationService{
		eventRepo: eventRepo,
		users:     users,
	}
}

func (s *participationService) Accept(ctx context.Context, notionID, userID string) (string, error) {
	event, err := s.eventRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		return "", fmt.Errorf("failed to load event: %w", err)
	}

	if err := s.eventRepo.AddParticipant(ctx, notionID, userID); err != nil {
		return "", fmt.Errorf("failed to add participant: %w", err)
	}

	return s.confirmationText(ctx, event), nil
}

func (s *participationService) Decline(ctx context.Context, notionID, userID string) (string, error) {
	event, err := s.eventRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		return "", fmt.Errorf("failed to load event: %w", err)
	}

	if err := s.eventRepo.RemoveParticipant(ctx, notionID, userID); err != nil {
		return "", fmt.Errorf("failed to remove participant: %w", err)
	}

	return fmt.Sprintf("Désinscription prise en compte pour **%s**.", event.Title), nil
}

func (s *participationService) confirmationText(ctx context.Context, event *entity.Event) string {
	if event.Status != entity.StatusPaid {
		return fmt.Sprintf("✅ Inscription confirmée pour **%s** !", event.Title)
	}

	price := "???"
	if event.Price != nil {
		price = strconv.FormatFloat(*event.Price, 'f', -1, 64) + "€"
	}

	recipient := fallbackOrganizer
	if event.CreatedBy != "" {
		if discordID, ok := s.users.ResolveDiscordID(ctx, event.CreatedBy); ok {
			recipient = fmt.Sprintf("<@%s>", discordID)
		}
	}

	return fmt.Sprintf("✅ Inscription confirmée pour **%s** ! 💸 Pense à payer %s à %s.",
		event.Title, price, recipient)
}
