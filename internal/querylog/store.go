package querylog

import (
	"fmt"
	"time"

	"github.com/dustin/vibewatch-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormRepository implements the Repository interface with GORM
type gormRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMRepository creates a new GORM-based query log repository
func NewGORMRepository(db *gorm.DB, log *logger.Logger) Repository {
	return &gormRepository{
		db:     db,
		logger: log.WithComponent("gorm-querylog-repository"),
	}
}

func (r *gormRepository) Save(entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if err := r.db.Create(entry).Error; err != nil {
		r.logger.Error("Failed to save query log entry: " + err.Error())
		return fmt.Errorf("failed to save query log entry: %w", err)
	}

	return nil
}

func (r *gormRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&Entry{})
	if result.Error != nil {
		r.logger.Error("Failed to prune query log: " + result.Error.Error())
		return 0, fmt.Errorf("failed to prune query log: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *gormRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&Entry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count query log entries: %w", err)
	}

	return count, nil
}

// Recorder wraps a Repository as the fire-and-forget port used by the HTTP
// layer. Failures are logged and swallowed; a broken query log must never
// surface to the recommendation caller.
type Recorder struct {
	repo   Repository
	logger *logger.Logger
}

// NewRecorder creates the fire-and-forget recorder
func NewRecorder(repo Repository, log *logger.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: log.WithComponent("query-recorder"),
	}
}

// Record persists one query, swallowing any failure
func (r *Recorder) Record(endpoint, query string) {
	entry := &Entry{
		ID:       uuid.New(),
		Endpoint: endpoint,
		Query:    query,
	}

	if err := r.repo.Save(entry); err != nil {
		r.logger.Warn("Dropping query log entry: " + err.Error())
	}
}
