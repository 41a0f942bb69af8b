package store

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCompletionRepo_MarkAndSet(t *testing.T) {
	s := testStore(t)
	ctx := t.Context()

	if err := s.Completions.MarkCompleted(ctx, "expectation-variance"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.Completions.MarkCompleted(ctx, "covariance-correlation"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	set, err := s.Completions.CompletedSet(ctx)
	if err != nil {
		t.Fatalf("completed set: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(set))
	}
	if !set["expectation-variance"] || !set["covariance-correlation"] {
		t.Errorf("unexpected set contents: %v", set)
	}

	n, err := s.Completions.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}

func TestCompletionRepo_MarkIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := t.Context()

	for range 3 {
		if err := s.Completions.MarkCompleted(ctx, "bayes-theorem"); err != nil {
			t.Fatalf("mark: %v", err)
		}
	}

	n, err := s.Completions.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected a single row after repeated marks, got %d", n)
	}
}

func TestCompletionRepo_Unmark(t *testing.T) {
	s := testStore(t)
	ctx := t.Context()

	if err := s.Completions.MarkCompleted(ctx, "pca"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.Completions.Unmark(ctx, "pca"); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	// Unmarking again is a no-op.
	if err := s.Completions.Unmark(ctx, "pca"); err != nil {
		t.Fatalf("unmark twice: %v", err)
	}

	set, err := s.Completions.CompletedSet(ctx)
	if err != nil {
		t.Fatalf("completed set: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
}

func TestActivityRepo_RecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := t.Context()

	events := []struct{ topic, kind string }{
		{"expectation-variance", EventCompleted},
		{"covariance-correlation", EventExplained},
		{"covariance-correlation", EventCompleted},
	}
	for _, e := range events {
		if err := s.Activity.Record(ctx, e.topic, e.kind); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := s.Activity.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	for _, e := range recent {
		if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("expected event ID to be assigned")
		}
	}

	days, err := s.Activity.ActiveDays(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("active days: %v", err)
	}
	if len(days) != 1 {
		t.Errorf("expected all events collapsed to one active day, got %d", len(days))
	}
}

func TestStudyStreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 14+offset, 0, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no activity", nil, 0},
		{"studied today only", []time.Time{day(0)}, 1},
		{"three day run ending today", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"streak alive from yesterday", []time.Time{day(-1), day(-2)}, 2},
		{"gap breaks streak", []time.Time{day(0), day(-2), day(-3)}, 1},
		{"stale activity", []time.Time{day(-5)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudyStreak(tt.days, now); got != tt.want {
				t.Errorf("StudyStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}
