package service

import (
	"context"
	"sync"

	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/pkg/notion"
)

// In-memory doubles for the repository and source interfaces. They mirror
// the semantics the postgres implementations guarantee: unique notion_id,
// idempotent participant add, no-op participant remove.

type fakeEventRepo struct {
	mu           sync.Mutex
	events       map[string]*entity.Event
	participants map[string][]string
	createErr    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:       make(map[string]*entity.Event),
		participants: make(map[string][]string),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.events[event.NotionID]; ok {
		return entity.ErrEventAlreadyExists
	}
	stored := *event
	f.events[event.NotionID] = &stored
	f.participants[event.NotionID] = append([]string(nil), event.Participants...)
	return nil
}

func (f *fakeEventRepo) GetByNotionID(_ context.Context, notionID string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[notionID]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copied := *event
	copied.Participants = append([]string(nil), f.participants[notionID]...)
	return &copied, nil
}

func (f *fakeEventRepo) GetLatest(ctx context.Context) (*entity.Event, error) {
	f.mu.Lock()
	var latest *entity.Event
	for _, event := range f.events {
		if latest == nil || (event.Date != nil && (latest.Date == nil || event.Date.After(*latest.Date))) {
			latest = event
		}
	}
	f.mu.Unlock()

	if latest == nil {
		return nil, entity.ErrEventNotFound
	}
	return f.GetByNotionID(ctx, latest.NotionID)
}

func (f *fakeEventRepo) GetAll(ctx context.Context) ([]*entity.Event, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.events))
	for id := range f.events {
		ids = append(ids, id)
	}
	f.mu.Unlock()

	events := make([]*entity.Event, 0, len(ids))
	for _, id := range ids {
		event, err := f.GetByNotionID(ctx, id)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (f *fakeEventRepo) KnownIDs(_ context.Context) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	known := make(map[string]struct{}, len(f.events))
	for id := range f.events {
		known[id] = struct{}{}
	}
	return known, nil
}

func (f *fakeEventRepo) AddParticipant(_ context.Context, notionID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.events[notionID]; !ok {
		return entity.ErrEventNotFound
	}
	for _, existing := range f.participants[notionID] {
		if existing == userID {
			return nil
		}
	}
	f.participants[notionID] = append(f.participants[notionID], userID)
	return nil
}

func (f *fakeEventRepo) RemoveParticipant(_ context.Context, notionID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current := f.participants[notionID]
	for i, existing := range current {
		if existing == userID {
			f.participants[notionID] = append(current[:i], current[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEventRepo) GetParticipants(_ context.Context, notionID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.participants[notionID]...), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*entity.UserMapping
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.UserMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.DiscordID == user.DiscordID || existing.NotionID == user.NotionID {
			return entity.ErrUserAlreadyRegistered
		}
	}
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByDiscordID(_ context.Context, discordID string) (*entity.UserMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.DiscordID == discordID {
			return user, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (f *fakeUserRepo) GetByNotionID(_ context.Context, notionID string) (*entity.UserMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.NotionID == notionID {
			return user, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateName(_ context.Context, id int64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			user.Name = name
			return nil
		}
	}
	return entity.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*entity.UserMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*entity.UserMapping(nil), f.users...), nil
}

type fakeSource struct {
	pages []notion.Page
	err   error
}

func (f *fakeSource) QueryEvents(_ context.Context, _ string, _ int) ([]notion.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type fakeAnnouncer struct {
	mu        sync.Mutex
	announced []string
	err       error
}

func (f *fakeAnnouncer) AnnounceEvent(_ context.Context, event *entity.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.announced = append(f.announced, event.NotionID)
	f.mu.Unlock()
	return nil
}
