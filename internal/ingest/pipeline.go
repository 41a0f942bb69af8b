package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/topicgraph"
	"github.com/quantslearn/quantslearn/internal/vectorstore"
)

// embedBatchSize is the number of chunks embedded per API call.
const embedBatchSize = 64

// Indexer is the slice of the vector store the pipeline needs.
type Indexer interface {
	EnsureSchema(ctx context.Context) error
	IndexPassages(ctx context.Context, passages []vectorstore.Passage, vectors [][]float32) (int, error)
}

// Pipeline embeds and indexes study notes.
type Pipeline struct {
	graph    *topicgraph.Graph
	embedder llm.Embedder
	indexer  Indexer
	log      *zap.SugaredLogger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(graph *topicgraph.Graph, embedder llm.Embedder, indexer Indexer, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{graph: graph, embedder: embedder, indexer: indexer, log: log}
}

// Stats summarizes one ingestion run.
type Stats struct {
	Files   int
	Chunks  int
	Indexed int
	Skipped []string
}

// IngestDir walks a notes directory laid out as
// <dir>/<category>/<topic-id>.md and indexes every file whose topic is
// in the graph. Files for unknown topics are skipped and reported in
// Stats.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*Stats, error) {
	if err := p.indexer.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	stats := &Stats{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isNotesFile(path) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		topicID := topicIDFromPath(rel)
		topic, err := p.graph.Topic(topicID)
		if err != nil {
			p.log.Warnw("skipping notes file with unknown topic", "file", rel, "topic", topicID)
			stats.Skipped = append(stats.Skipped, rel)
			return nil
		}

		indexed, chunks, err := p.ingestFile(ctx, rel, path, topic)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", rel, err)
		}

		stats.Files++
		stats.Chunks += chunks
		stats.Indexed += indexed
		return nil
	})
	if err != nil {
		return stats, err
	}

	p.log.Infow("ingestion complete",
		"files", stats.Files,
		"chunks", stats.Chunks,
		"indexed", stats.Indexed,
		"skipped", len(stats.Skipped),
	)
	return stats, nil
}

func (p *Pipeline) ingestFile(ctx context.Context, rel, path string, topic topicgraph.Topic) (indexed, total int, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	chunks, err := SplitFile(rel, string(content))
	if err != nil {
		return 0, 0, err
	}
	if len(chunks) == 0 {
		return 0, 0, nil
	}

	passages := make([]vectorstore.Passage, len(chunks))
	for i, c := range chunks {
		passages[i] = vectorstore.Passage{
			PassageID: c.ID,
			TopicID:   topic.ID,
			Category:  string(topic.Category),
			Source:    c.Source,
			Title:     c.Title,
			Content:   c.Content,
		}
	}

	for i := 0; i < len(chunks); i += embedBatchSize {
		end := min(i+embedBatchSize, len(chunks))

		texts := make([]string, end-i)
		for j, c := range chunks[i:end] {
			texts[j] = c.Content
		}

		vectors, err := p.embedder.Embed(ctx, texts)
		if err != nil {
			return indexed, len(chunks), fmt.Errorf("embed batch: %w", err)
		}

		n, err := p.indexer.IndexPassages(ctx, passages[i:end], vectors)
		indexed += n
		if err != nil {
			return indexed, len(chunks), err
		}
	}

	return indexed, len(chunks), nil
}

func isNotesFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt":
		return true
	}
	return false
}

// topicIDFromPath maps "probability/covariance-correlation.md" to
// "covariance-correlation".
func topicIDFromPath(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
