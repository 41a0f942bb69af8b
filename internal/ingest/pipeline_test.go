package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/topicgraph"
	"github.com/quantslearn/quantslearn/internal/vectorstore"
)

type fakeIndexer struct {
	ensured  bool
	passages []vectorstore.Passage
	vectors  [][]float32
}

func (f *fakeIndexer) EnsureSchema(context.Context) error { f.ensured = true; return nil }

func (f *fakeIndexer) IndexPassages(_ context.Context, passages []vectorstore.Passage, vectors [][]float32) (int, error) {
	f.passages = append(f.passages, passages...)
	f.vectors = append(f.vectors, vectors...)
	return len(passages), nil
}

func testGraph(t *testing.T) *topicgraph.Graph {
	t.Helper()
	g, err := topicgraph.Build([]topicgraph.Topic{
		{ID: "expectation-variance", Name: "Expectation & Variance", Category: topicgraph.CategoryProbability, Difficulty: 1, Priority: topicgraph.PriorityHigh},
		{ID: "covariance-correlation", Name: "Covariance & Correlation", Category: topicgraph.CategoryProbability, Difficulty: 2, Priority: topicgraph.PriorityHigh, Prerequisites: []string{"expectation-variance"}},
	})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func writeNotes(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPipeline_IngestDir(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "probability/covariance-correlation.md",
		"# Covariance\n\nCovariance measures joint variability.")
	writeNotes(t, dir, "probability/expectation-variance.md",
		"# Expectation\n\nThe expectation is the probability-weighted average.")

	indexer := &fakeIndexer{}
	p := NewPipeline(testGraph(t), llm.NewMockEmbedder(8), indexer, zap.NewNop().Sugar())

	stats, err := p.IngestDir(t.Context(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !indexer.ensured {
		t.Error("expected schema to be ensured before indexing")
	}
	if stats.Files != 2 {
		t.Errorf("expected 2 files, got %d", stats.Files)
	}
	if stats.Indexed != 2 {
		t.Errorf("expected 2 indexed passages, got %d", stats.Indexed)
	}
	if len(indexer.passages) != len(indexer.vectors) {
		t.Fatalf("passage/vector count mismatch: %d vs %d", len(indexer.passages), len(indexer.vectors))
	}

	byTopic := map[string]vectorstore.Passage{}
	for _, p := range indexer.passages {
		byTopic[p.TopicID] = p
	}
	cov, ok := byTopic["covariance-correlation"]
	if !ok {
		t.Fatal("expected a passage for covariance-correlation")
	}
	if cov.Category != "probability" {
		t.Errorf("expected category resolved from the graph, got %q", cov.Category)
	}
	if cov.Source != "probability/covariance-correlation.md" {
		t.Errorf("unexpected source: %q", cov.Source)
	}
}

func TestPipeline_SkipsUnknownTopics(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "probability/not-in-graph.md", "# Mystery\n\nNo such topic.")

	indexer := &fakeIndexer{}
	p := NewPipeline(testGraph(t), llm.NewMockEmbedder(8), indexer, zap.NewNop().Sugar())

	stats, err := p.IngestDir(t.Context(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Files != 0 || stats.Indexed != 0 {
		t.Errorf("expected nothing ingested, got files=%d indexed=%d", stats.Files, stats.Indexed)
	}
	if len(stats.Skipped) != 1 {
		t.Fatalf("expected 1 skipped file, got %d", len(stats.Skipped))
	}
}

func TestPipeline_IgnoresNonNotesFiles(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "probability/expectation-variance.md", "# Expectation\n\nDefinition.")
	writeNotes(t, dir, "probability/expectation-variance.png", "binary")

	indexer := &fakeIndexer{}
	p := NewPipeline(testGraph(t), llm.NewMockEmbedder(8), indexer, zap.NewNop().Sugar())

	stats, err := p.IngestDir(t.Context(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Files != 1 {
		t.Errorf("expected 1 file, got %d", stats.Files)
	}
}
