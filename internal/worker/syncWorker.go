package worker

import (
	"context"
	"time"

	"github.com/mleonec/notibot/internal/service"

	"github.com/sirupsen/logrus"
)

// SyncWorker drives the reconciliation loop on a fixed interval. Cycles run
// sequentially on this goroutine, so a slow cycle delays the next tick
// instead of overlapping with it.
type SyncWorker struct {
	syncService service.SyncService
	interval    time.Duration
}

func NewSyncWorker(syncService service.SyncService, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		syncService: syncService,
		interval:    interval,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Infof("Sync worker started (interval %s)", w.interval)

	// First cycle right away, then one per tick.
	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Sync worker stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *SyncWorker) runCycle(ctx context.Context) {
	start := time.Now()

	report, err := w.syncService.Sync(ctx)
	if err != nil {
		logrus.Errorf("Sync cycle failed: %v", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"fetched":   report.Fetched,
		"known":     report.Known,
		"inserted":  report.Inserted,
		"skipped":   report.Skipped,
		"announced": report.Announced,
		"duration":  time.Since(start),
	}).Info("Sync cycle completed")
}
