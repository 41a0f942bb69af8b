package explain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quantslearn/quantslearn/internal/llm"
)

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for explanation generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// Service generates topic explanations.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type explanationOutput struct {
	Title         string   `json:"title"`
	Explanation   string   `json:"explanation"`
	KeyIdeas      []string `json:"key_ideas"`
	WorkedExample string   `json:"worked_example"`
	CheckQuestion string   `json:"check_question"`
}

// Explain generates an explanation for the given topic at the given
// level. When input.Level is empty it defaults to intermediate.
func (s *Service) Explain(ctx context.Context, input Input) (*Explanation, error) {
	if input.Level == "" {
		input.Level = LevelIntermediate
	}
	if !input.Level.Valid() {
		return nil, fmt.Errorf("unknown explanation level: %q", input.Level)
	}

	req := llm.Request{
		System: explanationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplanationUserMessage(input)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	return &Explanation{
		TopicID:       input.Topic.ID,
		Title:         out.Title,
		Explanation:   out.Explanation,
		KeyIdeas:      out.KeyIdeas,
		WorkedExample: out.WorkedExample,
		CheckQuestion: out.CheckQuestion,
		Model:         resp.Model,
	}, nil
}
