package explain

import (
	"fmt"
	"strings"
)

const explanationSystemPrompt = `You are an experienced quantitative finance interviewer and tutor. You explain mathematical concepts the way they come up in quant interviews: precise, intuition-first, and always connected to where the concept is actually used.`

func buildExplanationUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic.Name))
	if input.Topic.Description != "" {
		b.WriteString(fmt.Sprintf("Description: %s\n", input.Topic.Description))
	}
	b.WriteString(fmt.Sprintf("Difficulty: %d of 5\n", input.Topic.Difficulty))
	b.WriteString(fmt.Sprintf("Level requested: %s\n", input.Level))

	if len(input.Prerequisites) > 0 {
		b.WriteString("\nPrerequisites the reader has already completed:\n")
		for _, p := range input.Prerequisites {
			b.WriteString(fmt.Sprintf("- %s\n", p.Name))
		}
	}

	if len(input.Passages) > 0 {
		b.WriteString("\nReference notes (use these as ground truth where they apply):\n")
		for _, p := range input.Passages {
			if p.Title != "" {
				b.WriteString(fmt.Sprintf("### %s\n", p.Title))
			}
			b.WriteString(p.Content)
			b.WriteString("\n\n")
		}
	}

	b.WriteString(levelInstructions(input.Level))

	return b.String()
}

func levelInstructions(level Level) string {
	common := `
Instructions:
1. Explain the concept in 2-4 paragraphs. Lead with intuition, then make it precise.
2. List 3-5 key ideas, one sentence each.
3. Show one complete worked example with numbered steps, of the kind that appears in quant interviews.
4. End with one check question the reader should now be able to answer.
5. Use plain ASCII text for all math. No LaTeX. Use / for division, * for multiplication, ^ for powers.
`
	switch level {
	case LevelBeginner:
		return common + `6. Assume no background beyond the listed prerequisites. Define every term you use.`
	case LevelAdvanced:
		return common + `6. Assume fluency with the prerequisites. Skip basic definitions and include the edge cases and assumptions an interviewer would probe.`
	default:
		return common + `6. Assume working knowledge of the prerequisites but restate any result you rely on.`
	}
}
