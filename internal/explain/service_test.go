package explain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/topicgraph"
)

func validExplanationJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Covariance and Correlation",
		"explanation": "Covariance measures how two variables move together. Correlation rescales it to [-1, 1] so it can be compared across pairs.",
		"key_ideas": [
			"Cov(X, Y) = E[XY] - E[X]E[Y]",
			"Correlation is covariance divided by the product of standard deviations",
			"Zero correlation does not imply independence"
		],
		"worked_example": "1. Given returns X = (1, -1) and Y = (2, -2) with equal probability\n2. E[X] = 0, E[Y] = 0\n3. E[XY] = (1*2 + (-1)*(-2)) / 2 = 2\n4. Cov(X, Y) = 2",
		"check_question": "If Corr(X, Y) = 0, can X and Y still be dependent?"
	}`)
}

func testTopic() topicgraph.Topic {
	return topicgraph.Topic{
		ID:          "covariance-correlation",
		Name:        "Covariance & Correlation",
		Description: "How two random variables move together",
		Category:    topicgraph.CategoryProbability,
		Difficulty:  2,
		Priority:    topicgraph.PriorityHigh,
	}
}

func TestService_GeneratesExplanation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validExplanationJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	exp, err := svc.Explain(t.Context(), Input{
		Topic: testTopic(),
		Level: LevelBeginner,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exp.TopicID != "covariance-correlation" {
		t.Errorf("expected topic ID carried through, got %q", exp.TopicID)
	}
	if exp.Title != "Covariance and Correlation" {
		t.Errorf("unexpected title: %q", exp.Title)
	}
	if len(exp.KeyIdeas) != 3 {
		t.Errorf("expected 3 key ideas, got %d", len(exp.KeyIdeas))
	}
	if exp.WorkedExample == "" {
		t.Error("expected non-empty worked example")
	}
	if exp.CheckQuestion == "" {
		t.Error("expected non-empty check question")
	}
	if exp.Model != "mock" {
		t.Errorf("expected model 'mock', got %q", exp.Model)
	}
}

func TestService_PromptIncludesPassagesAndPrereqs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validExplanationJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{
		Topic: testTopic(),
		Level: LevelAdvanced,
		Prerequisites: []topicgraph.Topic{
			{ID: "expectation-variance", Name: "Expectation & Variance"},
		},
		Passages: []Passage{
			{Title: "Notes on covariance", Content: "Covariance is bilinear."},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Expectation & Variance") {
		t.Error("expected prompt to list prerequisites")
	}
	if !strings.Contains(msg, "Covariance is bilinear.") {
		t.Error("expected prompt to include retrieved passages")
	}
	if !strings.Contains(msg, "advanced") {
		t.Error("expected prompt to state the requested level")
	}
	if mock.Calls[0].Schema == nil {
		t.Error("expected structured output schema on the request")
	}
}

func TestService_DefaultsToIntermediate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validExplanationJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Topic: testTopic()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "intermediate") {
		t.Error("expected empty level to default to intermediate")
	}
}

func TestService_RejectsUnknownLevel(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Topic: testTopic(), Level: "expert"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls, got %d", mock.CallCount())
	}
}

func TestService_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Topic: testTopic(), Level: LevelBeginner})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}
