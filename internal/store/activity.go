package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ActivityRepo records study events and answers activity queries.
type ActivityRepo interface {
	// Record appends one event to the activity log.
	Record(ctx context.Context, topicID, kind string) error

	// Recent returns the most recent events, newest first.
	Recent(ctx context.Context, limit int) ([]StudyEvent, error)

	// ActiveDays returns the distinct local dates with at least one
	// event, newest first, within the given window.
	ActiveDays(ctx context.Context, since time.Time) ([]time.Time, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo creates an ActivityRepo on the given handle.
func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &activityRepo{db: db}
}

func (r *activityRepo) Record(ctx context.Context, topicID, kind string) error {
	event := StudyEvent{
		TopicID:   topicID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]StudyEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []StudyEvent
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *activityRepo) ActiveDays(ctx context.Context, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).
		Model(&StudyEvent{}).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	var days []time.Time
	seen := map[string]bool{}
	for _, ts := range stamps {
		day := localDate(ts)
		key := day.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}
	return days, nil
}

// StudyStreak counts consecutive active days ending today or yesterday.
// A learner who studied yesterday but not yet today still has a live
// streak.
func StudyStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := localDate(now)
	cursor := today
	if !days[0].Equal(today) {
		cursor = today.AddDate(0, 0, -1)
		if !days[0].Equal(cursor) {
			return 0
		}
	}

	streak := 0
	for _, day := range days {
		if !day.Equal(cursor) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// localDate drops the time-of-day component in local time.
func localDate(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
