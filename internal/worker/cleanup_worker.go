package worker

import (
	"fmt"
	"time"

	"github.com/dustin/vibewatch-backend/config"
	"github.com/dustin/vibewatch-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupFunc deletes records older than the cutoff and reports how many
// were removed
type CleanupFunc func(cutoff time.Time) (int64, error)

// CleanupWorker runs a scheduled retention sweep with configurable interval
// and retention period
type CleanupWorker struct {
	name        string
	cron        *cron.Cron
	cleanupFunc CleanupFunc
	interval    time.Duration
	retention   time.Duration
	logger      *logger.Logger
	entryID     cron.EntryID
}

// NewCleanupWorker creates a cron-scheduled retention worker with validation and defaults
func NewCleanupWorker(cfg *config.WorkerConfig, name string, cleanupFunc CleanupFunc, log *logger.Logger) (*CleanupWorker, error) {
	// Set defaults for nil or empty config values
	interval := 1 * time.Hour
	if cfg != nil && cfg.CleanupInterval != "" {
		parsed, err := time.ParseDuration(cfg.CleanupInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid cleanup interval '%s': %v", cfg.CleanupInterval, err)
		}
		interval = parsed
	}

	retention := 30 * 24 * time.Hour
	if cfg != nil && cfg.RetentionPeriod != "" {
		parsed, err := time.ParseDuration(cfg.RetentionPeriod)
		if err != nil {
			return nil, fmt.Errorf("invalid retention period '%s': %v", cfg.RetentionPeriod, err)
		}
		retention = parsed
	}

	return &CleanupWorker{
		name:        name,
		cron:        cron.New(),
		cleanupFunc: cleanupFunc,
		interval:    interval,
		retention:   retention,
		logger:      log.WithComponent("cleanup-worker"),
	}, nil
}

// Start schedules and begins the retention sweeps
func (w *CleanupWorker) Start() error {
	expression := w.durationToCronExpression(w.interval)
	w.logger.Info(fmt.Sprintf("Starting cleanup worker: %s (every %v, retention %v)", w.name, w.interval, w.retention))

	entryID, err := w.cron.AddFunc(expression, func() {
		cutoff := time.Now().Add(-w.retention)

		removed, err := w.cleanupFunc(cutoff)
		if err != nil {
			w.logger.Error("Cleanup sweep failed for worker " + w.name + ": " + err.Error())
			return
		}

		if removed > 0 {
			w.logger.Info(fmt.Sprintf("Cleanup worker %s removed %d records", w.name, removed))
		}
	})

	if err != nil {
		w.logger.Error("Failed to schedule cleanup worker " + w.name + ": " + err.Error())
		return err
	}

	w.entryID = entryID
	w.cron.Start()

	return nil
}

// Stop gracefully shuts down the worker
func (w *CleanupWorker) Stop() error {
	w.logger.Info("Stopping cleanup worker: " + w.name)

	if w.entryID > 0 {
		w.cron.Remove(w.entryID)
	}

	ctx := w.cron.Stop()
	<-ctx.Done() // Wait for graceful shutdown

	return nil
}

// IsRunning checks if the worker has active cron entries
func (w *CleanupWorker) IsRunning() bool {
	return len(w.cron.Entries()) > 0
}

// durationToCronExpression converts duration to cron format with fallback
func (w *CleanupWorker) durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	if hours > 0 && minutes%60 == 0 {
		return fmt.Sprintf("0 */%d * * *", hours)
	} else if minutes > 0 && minutes < 60 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	}

	// Fallback for unsupported durations
	w.logger.Warn(fmt.Sprintf("Unsupported cleanup interval %v, defaulting to hourly", duration))
	return "0 * * * *"
}
