package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quantslearn/quantslearn/internal/review"
)

// ReviewRepo persists per-topic review schedules.
type ReviewRepo interface {
	// Upsert stores the schedule, replacing any existing row for the
	// topic.
	Upsert(ctx context.Context, state review.State) error

	// Get returns the schedule for a topic. The second return is false
	// when no schedule exists.
	Get(ctx context.Context, topicID string) (review.State, bool, error)

	// All returns every stored schedule.
	All(ctx context.Context) ([]review.State, error)

	// Delete removes a schedule. Deleting a missing schedule is a
	// no-op.
	Delete(ctx context.Context, topicID string) error
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo creates a ReviewRepo on the given handle.
func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Upsert(ctx context.Context, state review.State) error {
	row := Review{
		TopicID:      state.TopicID,
		Stage:        state.Stage,
		NextReviewAt: state.NextReviewAt,
		LastReviewAt: state.LastReviewAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "topic_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func (r *reviewRepo) Get(ctx context.Context, topicID string) (review.State, bool, error) {
	var row Review
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return review.State{}, false, nil
	}
	if err != nil {
		return review.State{}, false, err
	}
	return row.state(), true, nil
}

func (r *reviewRepo) All(ctx context.Context) ([]review.State, error) {
	var rows []Review
	if err := r.db.WithContext(ctx).
		Order("next_review_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	states := make([]review.State, len(rows))
	for i, row := range rows {
		states[i] = row.state()
	}
	return states, nil
}

func (r *reviewRepo) Delete(ctx context.Context, topicID string) error {
	return r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Delete(&Review{}).Error
}
