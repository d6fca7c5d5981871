package querylog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded query with the endpoint it arrived on
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Endpoint  string    `gorm:"not null;size:255" json:"endpoint"`
	Query     string    `gorm:"type:text;not null" json:"query"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// Repository defines persistence for query log entries
type Repository interface {
	Save(entry *Entry) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	Count() (int64, error)
}
