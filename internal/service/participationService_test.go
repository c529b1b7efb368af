package service

import (
	"context"
	"sync"
	"testing"

	"github.com/mleonec/notibot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, repo *fakeEventRepo, event *entity.Event) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), event))
}

func newParticipationFixture(t *testing.T) (*fakeEventRepo, UserService, ParticipationService) {
	t.Helper()
	repo := newFakeEventRepo()
	users := NewUserService(&fakeUserRepo{})
	return repo, users, NewParticipationService(repo, users)
}

func TestAccept_FreeEvent(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)
	seedEvent(t, repo, &entity.Event{NotionID: "ev-1", Title: "Apéro", Status: entity.StatusFree})

	msg, err := svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)

	assert.Equal(t, "✅ Inscription confirmée pour **Apéro** !", msg)

	participants, err := repo.GetParticipants(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"discord-42"}, participants)
}

func TestAccept_IsIdempotent(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)
	seedEvent(t, repo, &entity.Event{NotionID: "ev-1", Title: "Apéro", Status: entity.StatusFree})

	_, err := svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)

	participants, err := repo.GetParticipants(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func TestAccept_ConcurrentSameUser(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)
	seedEvent(t, repo, &entity.Event{NotionID: "ev-1", Title: "Apéro", Status: entity.StatusFree})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Accept(context.Background(), "ev-1", "discord-42")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	participants, err := repo.GetParticipants(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func TestAccept_PaidEventWithRegisteredOrganizer(t *testing.T) {
	repo, users, svc := newParticipationFixture(t)

	_, err := users.Register(context.Background(), &RegisterRequest{
		DiscordID: "discord-orga",
		NotionID:  "notion-orga",
		Name:      "Léa",
	})
	require.NoError(t, err)

	price := 25.0
	seedEvent(t, repo, &entity.Event{
		NotionID:  "ev-1",
		Title:     "Escape game",
		Status:    entity.StatusPaid,
		Price:     &price,
		CreatedBy: "notion-orga",
	})

	msg, err := svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)

	assert.Contains(t, msg, "Inscription confirmée pour **Escape game**")
	assert.Contains(t, msg, "Pense à payer 25€ à <@discord-orga>.")
}

func TestAccept_PaidEventFallbacks(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)

	// No price, organizer not registered.
	seedEvent(t, repo, &entity.Event{
		NotionID:  "ev-1",
		Title:     "Escape game",
		Status:    entity.StatusPaid,
		CreatedBy: "notion-inconnu",
	})

	msg, err := svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)

	assert.Contains(t, msg, "Pense à payer ??? à l'organisateur.")
}

func TestAccept_UnknownEvent(t *testing.T) {
	_, _, svc := newParticipationFixture(t)

	_, err := svc.Accept(context.Background(), "ev-missing", "discord-42")
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestDecline_RemovesParticipant(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)
	seedEvent(t, repo, &entity.Event{NotionID: "ev-1", Title: "Apéro", Status: entity.StatusFree})

	_, err := svc.Accept(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)

	msg, err := svc.Decline(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)
	assert.Equal(t, "Désinscription prise en compte pour **Apéro**.", msg)

	participants, err := repo.GetParticipants(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestDecline_WithoutPriorAccept(t *testing.T) {
	repo, _, svc := newParticipationFixture(t)
	seedEvent(t, repo, &entity.Event{NotionID: "ev-1", Title: "Apéro", Status: entity.StatusFree})

	msg, err := svc.Decline(context.Background(), "ev-1", "discord-42")
	require.NoError(t, err)
	assert.Equal(t, "Désinscription prise en compte pour **Apéro**.", msg)
}
