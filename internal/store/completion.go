package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionRepo tracks which topics the learner has completed.
type CompletionRepo interface {
	// MarkCompleted records a completion. Marking an already-completed
	// topic is a no-op and keeps the original timestamp.
	MarkCompleted(ctx context.Context, topicID string) error

	// Unmark removes a completion. Removing a topic that was never
	// completed is a no-op.
	Unmark(ctx context.Context, topicID string) error

	// CompletedSet returns the completed topic IDs as a lookup set.
	CompletedSet(ctx context.Context) (map[string]bool, error)

	// Count returns the number of completed topics.
	Count(ctx context.Context) (int, error)
}

type completionRepo struct {
	db *gorm.DB
}

// NewCompletionRepo creates a CompletionRepo on the given handle.
func NewCompletionRepo(db *gorm.DB) CompletionRepo {
	return &completionRepo{db: db}
}

func (r *completionRepo) MarkCompleted(ctx context.Context, topicID string) error {
	row := Completion{TopicID: topicID, CompletedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *completionRepo) Unmark(ctx context.Context, topicID string) error {
	return r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Delete(&Completion{}).Error
}

func (r *completionRepo) CompletedSet(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&Completion{}).
		Pluck("topic_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *completionRepo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&Completion{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
