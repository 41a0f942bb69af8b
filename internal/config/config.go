// Package config assembles application configuration from the
// environment.
package config

import (
	"os"
	"strings"

	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/store"
)

// Config holds everything the server and CLI commands need to start.
type Config struct {
	// Addr is the HTTP listen address. Default: ":8090".
	Addr string

	// DBPath is the SQLite database file.
	DBPath string

	// WeaviateURL is the vector store endpoint.
	// Default: "http://localhost:8080".
	WeaviateURL string

	// NotesDir is the study-notes directory for ingestion.
	// Default: "notes".
	NotesDir string

	// AllowedOrigins lists CORS origins for the web frontend, or "*".
	AllowedOrigins []string

	// LLM is the model provider configuration.
	LLM llm.Config

	// LLMExplicit reports whether QUANTSLEARN_LLM_PROVIDER was set,
	// as opposed to a provider picked up by discovery or defaults.
	LLMExplicit bool
}

// FromEnv builds a Config from environment variables, falling back to
// defaults and to DiscoverConfig for the model provider when no
// explicit provider is set.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:           ":8090",
		WeaviateURL:    "http://localhost:8080",
		NotesDir:       "notes",
		AllowedOrigins: []string{"*"},
	}

	if a := os.Getenv("QUANTSLEARN_ADDR"); a != "" {
		cfg.Addr = a
	}
	if u := os.Getenv("QUANTSLEARN_WEAVIATE_URL"); u != "" {
		cfg.WeaviateURL = u
	}
	if d := os.Getenv("QUANTSLEARN_NOTES_DIR"); d != "" {
		cfg.NotesDir = d
	}
	if o := os.Getenv("QUANTSLEARN_ALLOWED_ORIGINS"); o != "" {
		cfg.AllowedOrigins = splitOrigins(o)
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	cfg.DBPath = dbPath

	cfg.LLM = llm.ConfigFromEnv()
	cfg.LLMExplicit = os.Getenv("QUANTSLEARN_LLM_PROVIDER") != ""
	if !cfg.LLMExplicit {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
