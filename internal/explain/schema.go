package explain

import "github.com/quantslearn/quantslearn/internal/llm"

// ExplanationSchema defines the JSON schema for explanation generation.
var ExplanationSchema = &llm.Schema{
	Name:        "topic-explanation",
	Description: "A topic explanation with key ideas, a worked example, and a check question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the explanation (3-8 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Clear explanation of the concept, pitched at the requested level (2-4 paragraphs)",
			},
			"key_ideas": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 key ideas, one sentence each",
			},
			"worked_example": map[string]any{
				"type":        "string",
				"description": "A complete worked example with numbered steps",
			},
			"check_question": map[string]any{
				"type":        "string",
				"description": "One question the reader should be able to answer after the explanation",
			},
		},
		"required":             []any{"title", "explanation", "key_ideas", "worked_example", "check_question"},
		"additionalProperties": false,
	},
}
