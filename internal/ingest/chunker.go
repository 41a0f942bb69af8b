// Package ingest turns study-notes files into embedded passages in the
// vector store.
package ingest

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 1000
	chunkOverlap = chunkSize / 10
)

// markdownSeparators prefer heading boundaries so chunks stay aligned
// with the notes' structure.
var markdownSeparators = []string{
	"\n# ", "\n## ", "\n### ", "\n#### ", "\n##### ", "\n###### ",
	"\n\n", "\n", " ", "",
}

var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Chunk is one split of a source file, ready for embedding.
type Chunk struct {
	// ID is "<source>#<index>", stable across re-runs of the same
	// content.
	ID      string
	Source  string
	Title   string
	Content string
}

// SplitFile splits file content into chunks sized for embedding.
// Markdown files split on heading boundaries first.
func SplitFile(source, content string) ([]Chunk, error) {
	separators := defaultSeparators
	if strings.HasSuffix(source, ".md") || strings.HasSuffix(source, ".markdown") {
		separators = markdownSeparators
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators(separators),
	)

	pieces, err := splitter.SplitText(content)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", source, err)
	}

	chunks := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			ID:      fmt.Sprintf("%s#%d", source, i),
			Source:  source,
			Title:   chunkTitle(piece),
			Content: piece,
		})
	}
	return chunks, nil
}

// chunkTitle extracts a heading from the start of a chunk, if present.
func chunkTitle(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return strings.TrimSpace(strings.TrimLeft(line, "# "))
	}
	return ""
}
