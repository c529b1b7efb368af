package service

import (
	"context"
	"fmt"

	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/internal/entity"
)

// unknownUserLabel is the display fallback for unresolved Notion identities.
const unknownUserLabel = "Inconnu"

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*entity.UserMapping, error) {
	if req.DiscordID == "" || req.NotionID == "" || req.Name == "" {
		return nil, entity.ErrInvalidInput
	}

	user := &entity.UserMapping{
		Name:      req.Name,
		DiscordID: req.DiscordID,
		NotionID:  req.NotionID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == entity.ErrUserAlreadyRegistered {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *userService) ResolveDisplayName(ctx context.Context, notionID string) string {
	user, err := s.userRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		return unknownUserLabel
	}
	return user.Name
}

func (s *userService) ResolveDiscordID(ctx context.Context, notionID string) (string, bool) {
	user, err := s.userRepo.GetByNotionID(ctx, notionID)
	if err != nil {
		return "", false
	}
	return user.DiscordID, true
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*entity.UserMapping, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}
