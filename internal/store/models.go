package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantslearn/quantslearn/internal/review"
)

// Completion marks a topic as completed. One row per topic.
type Completion struct {
	TopicID     string    `gorm:"primaryKey"`
	CompletedAt time.Time `gorm:"not null"`
}

// Review holds the spaced-review schedule for a completed topic. One
// row per topic.
type Review struct {
	TopicID      string    `gorm:"primaryKey"`
	Stage        int       `gorm:"not null"`
	NextReviewAt time.Time `gorm:"index;not null"`
	LastReviewAt time.Time `gorm:"not null"`
}

func (r Review) state() review.State {
	return review.State{
		TopicID:      r.TopicID,
		Stage:        r.Stage,
		NextReviewAt: r.NextReviewAt,
		LastReviewAt: r.LastReviewAt,
	}
}

// Event kinds recorded in the activity log.
const (
	EventCompleted   = "completed"
	EventUncompleted = "uncompleted"
	EventExplained   = "explained"
	EventReviewed    = "reviewed"
)

// StudyEvent is one entry in the append-only activity log. The log
// drives the study-streak and dashboard history.
type StudyEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TopicID   string    `gorm:"index;not null"`
	Kind      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// BeforeCreate assigns the event ID.
func (e *StudyEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
