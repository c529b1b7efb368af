package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/internal/entity"

	"github.com/sirupsen/logrus"
)

// SyncReport summarizes one reconciliation cycle.
type SyncReport struct {
	Fetched   int `json:"fetched"`
	Known     int `json:"known"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
	Announced int `json:"announced"`
}

type syncService struct {
	source    EventSource
	eventRepo repository.EventRepository
	announcer Announcer
	since     string
	pageSize  int

	// mu serializes cycles: the worker tick and the manual trigger from
	// the admin API must never reconcile the same store concurrently.
	mu sync.Mutex
}

func NewSyncService(
	source EventSource,
	eventRepo repository.EventRepository,
	announcer Announcer,
	since string,
	pageSize int,
) SyncService {
	return &syncService{
		source:    source,
		eventRepo: eventRepo,
		announcer: announcer,
		since:     since,
		pageSize:  pageSize,
	}
}

// Sync fetches the current event list, diffs it against the stored ids and
// inserts-then-announces each unseen event in source order. A fetch failure
// aborts the cycle before any mutation; a malformed record is skipped with
// a warning and the cycle continues.
func (s *syncService) Sync(ctx context.Context) (*SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &SyncReport{}

	pages, err := s.source.QueryEvents(ctx, s.since, s.pageSize)
	if err != nil {
		return report, fmt.Errorf("%w: %v", entity.ErrSourceUnavailable, err)
	}
	report.Fetched = len(pages)

	known, err := s.eventRepo.KnownIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load known ids: %w", err)
	}

	for i := range pages {
		page := &pages[i]

		if _, ok := known[page.ID]; ok {
			report.Known++
			continue
		}

		event, err := ParseEvent(page)
		if err != nil {
			logrus.Warnf("Skipping malformed event record %s: %v", page.ID, err)
			report.Skipped++
			continue
		}

		if err := s.eventRepo.Create(ctx, event); err != nil {
			if errors.Is(err, entity.ErrEventAlreadyExists) {
				// Possible when another instance inserted between the diff
				// and this insert; the unique constraint keeps the invariant.
				logrus.Warnf("Event %s already stored, skipping insert", event.NotionID)
				report.Known++
				continue
			}
			return report, fmt.Errorf("failed to store event %s: %w", event.NotionID, err)
		}
		report.Inserted++
		logrus.Infof("New event stored: %s (%s)", event.Title, event.NotionID)

		// The event stays inserted even when the announcement fails; it
		// will not be re-announced on the next cycle.
		if err := s.announcer.AnnounceEvent(ctx, event); err != nil {
			logrus.Errorf("Failed to announce event %s: %v", event.NotionID, err)
			continue
		}
		report.Announced++
	}

	return report, nil
}
