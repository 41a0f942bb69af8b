// Package explain generates topic explanations with a language model,
// grounded on passages retrieved from the study-notes index.
package explain

import "github.com/quantslearn/quantslearn/internal/topicgraph"

// Level selects the depth of an explanation.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Passage is a retrieved study-notes excerpt used to ground the
// explanation.
type Passage struct {
	Source  string
	Title   string
	Content string
}

// Input holds all context needed to generate an explanation.
type Input struct {
	Topic         topicgraph.Topic
	Level         Level
	Prerequisites []topicgraph.Topic
	Passages      []Passage
}

// Explanation is a generated topic explanation.
type Explanation struct {
	TopicID       string   `json:"topic_id"`
	Title         string   `json:"title"`
	Explanation   string   `json:"explanation"`
	KeyIdeas      []string `json:"key_ideas"`
	WorkedExample string   `json:"worked_example"`
	CheckQuestion string   `json:"check_question"`
	Model         string   `json:"model"`
}
