package service

import (
	"context"
	"fmt"

	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/internal/entity"
)

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) GetLatest(ctx context.Context) (*entity.Event, error) {
	event, err := s.eventRepo.GetLatest(ctx)
	if err != nil {
		if err == entity.ErrEventNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get latest event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetAll(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByNotionID(ctx context.Context, notionID string) (*entity.Event, error) {
	event, err := s.eventRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		if err == entity.ErrEventNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetParticipants(ctx context.Context, notionID string) ([]string, error) {
	participants, err := s.eventRepo.GetParticipants(ctx, notionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return participants, nil
}
