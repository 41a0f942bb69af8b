// Package review schedules completed topics for periodic review using
// an expanding interval schedule, so interview prep material stays
// fresh instead of decaying after first completion.
package review

import "time"

// BaseIntervals defines the expanding interval schedule in days.
// Stage 0 is the first review after completion.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationStage is the stage at which a topic graduates. A topic
// graduates after passing every interval in BaseIntervals.
const GraduationStage = 6

// GraduatedIntervalDays is the review interval for graduated topics.
const GraduatedIntervalDays = 90

// State holds the review schedule for a single topic.
type State struct {
	TopicID      string    `json:"topic_id"`
	Stage        int       `json:"stage"`
	NextReviewAt time.Time `json:"next_review_at"`
	LastReviewAt time.Time `json:"last_review_at"`
}

// Graduated reports whether the topic has passed the full schedule.
func (s State) Graduated() bool {
	return s.Stage >= GraduationStage
}

// IntervalDays returns the current interval length.
func (s State) IntervalDays() int {
	if s.Graduated() {
		return GraduatedIntervalDays
	}
	if s.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[s.Stage]
}

// Due reports whether the topic is at or past its review date.
func (s State) Due(now time.Time) bool {
	return !now.Before(s.NextReviewAt)
}

// OverdueDays returns how many days past due the topic is, zero when
// not yet due.
func (s State) OverdueDays(now time.Time) float64 {
	if !s.Due(now) {
		return 0
	}
	return now.Sub(s.NextReviewAt).Hours() / 24
}

// Initial returns the schedule for a topic completed at the given time.
func Initial(topicID string, completedAt time.Time) State {
	first := State{TopicID: topicID, Stage: 0, LastReviewAt: completedAt}
	first.NextReviewAt = completedAt.AddDate(0, 0, first.IntervalDays())
	return first
}

// Advance moves the schedule forward after a successful review.
func Advance(s State, reviewedAt time.Time) State {
	next := State{
		TopicID:      s.TopicID,
		Stage:        s.Stage + 1,
		LastReviewAt: reviewedAt,
	}
	next.NextReviewAt = reviewedAt.AddDate(0, 0, next.IntervalDays())
	return next
}

// Reset restarts the schedule after a failed review.
func Reset(s State, reviewedAt time.Time) State {
	return Initial(s.TopicID, reviewedAt)
}

// DueTopics filters states down to those due at now, most overdue
// first. The sort is stable for equal due dates, preserving input
// order.
func DueTopics(states []State, now time.Time) []State {
	var due []State
	for _, s := range states {
		if s.Due(now) {
			due = append(due, s)
		}
	}
	// Insertion sort by due date ascending; the lists are small.
	for i := 1; i < len(due); i++ {
		for j := i; j > 0 && due[j].NextReviewAt.Before(due[j-1].NextReviewAt); j-- {
			due[j], due[j-1] = due[j-1], due[j]
		}
	}
	return due
}
