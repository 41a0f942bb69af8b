package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantslearn/quantslearn/internal/config"
	"github.com/quantslearn/quantslearn/internal/ingest"
	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/vectorstore"
)

var indexCmd = &cobra.Command{
	Use:   "index [notes-dir]",
	Short: "Embed and index study notes into the vector store",
	Long: `Index walks a notes directory laid out as <category>/<topic-id>.md,
splits each file into passages, embeds them, and stores the result in
Weaviate for retrieval-grounded explanations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	dir := cfg.NotesDir
	if len(args) == 1 {
		dir = args[0]
	}

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	embedder, err := llm.NewEmbedder(cfg.LLM)
	if err != nil {
		return err
	}

	vs, err := vectorstore.New(cfg.WeaviateURL, logger)
	if err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(graph, embedder, vs, logger)
	stats, err := pipeline.IngestDir(cmd.Context(), dir)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d passages from %d files (%d chunks total)\n",
		stats.Indexed, stats.Files, stats.Chunks)
	for _, skipped := range stats.Skipped {
		fmt.Printf("  skipped %s: no matching topic\n", skipped)
	}
	return nil
}

func init() {
	indexCmd.Flags().String("catalog", "", "Topic catalog YAML (defaults to the embedded catalog)")
}
