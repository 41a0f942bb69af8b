package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantslearn/quantslearn/internal/config"
	"github.com/quantslearn/quantslearn/internal/explain"
	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/maplayout"
	"github.com/quantslearn/quantslearn/internal/registry"
	"github.com/quantslearn/quantslearn/internal/server"
	"github.com/quantslearn/quantslearn/internal/store"
	"github.com/quantslearn/quantslearn/internal/topicgraph"
	"github.com/quantslearn/quantslearn/internal/vectorstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUANTSLEARN_ADDR)")
	serveCmd.Flags().String("catalog", "", "Topic catalog YAML (defaults to the embedded catalog)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	// The explainer and retrieval stack are optional: without a model
	// provider the map, progress, and dashboard still work.
	var explainer server.Explainer
	var embedder llm.Embedder
	var searcher server.PassageSearcher

	if verr := cfg.LLM.Validate(); verr != nil {
		// An explicitly requested provider that cannot start is a
		// misconfiguration, not an optional feature.
		if cfg.LLMExplicit {
			return fmt.Errorf("model provider %q: %w", cfg.LLM.Provider, verr)
		}
		logger.Infow("no model provider configured, explain endpoint disabled")
	} else {
		provider, perr := llm.NewProvider(cmd.Context(), cfg.LLM, logger)
		if perr != nil {
			return perr
		}
		explainer = explain.NewService(provider, explain.DefaultConfig())

		if emb, eerr := llm.NewEmbedder(cfg.LLM); eerr == nil {
			if vs, verr := vectorstore.New(cfg.WeaviateURL, logger); verr == nil {
				embedder = emb
				searcher = vs
			} else {
				logger.Warnw("vector store unavailable, explanations will be ungrounded", "error", verr)
			}
		} else {
			logger.Warnw("embeddings unavailable, explanations will be ungrounded", "error", eerr)
		}
	}

	h, err := server.NewHandler(
		graph,
		maplayout.DefaultSpacing(),
		st.Completions,
		st.Activity,
		st.Reviews,
		explainer,
		embedder,
		searcher,
		logger,
	)
	if err != nil {
		return err
	}

	srv := server.New(h, cfg.AllowedOrigins, logger)
	logger.Infow("starting server", "addr", cfg.Addr, "topics", len(graph.Topics()))
	return srv.Run(cfg.Addr)
}

// loadGraph builds the topic graph from the --catalog flag or the
// embedded catalog.
func loadGraph(cmd *cobra.Command) (*topicgraph.Graph, error) {
	var (
		topics []topicgraph.Topic
		err    error
	)
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		topics, err = registry.LoadFile(path)
	} else {
		topics, err = registry.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return topicgraph.Build(topics)
}
