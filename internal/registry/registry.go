// Package registry loads the topic catalog: the static configuration
// every other component consumes. The embedded catalog ships with the
// binary; an external file can be loaded for validation tooling.
package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/quantslearn/quantslearn/internal/topicgraph"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed catalog_schema.json
var catalogSchemaJSON []byte

// compileSchema compiles the catalog schema once.
var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://topic-catalog.json", doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile("schema://topic-catalog.json")
})

// catalogFile mirrors the YAML structure.
type catalogFile struct {
	Topics []catalogTopic `yaml:"topics"`
}

type catalogTopic struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Difficulty    int      `yaml:"difficulty"`
	Priority      string   `yaml:"priority"`
	Covered       bool     `yaml:"covered"`
	Prerequisites []string `yaml:"prerequisites"`
}

// Load parses and validates the embedded catalog and returns its topics
// in file order. File order is the registry order the rest of the system
// relies on for deterministic tie-breaks.
func Load() ([]topicgraph.Topic, error) {
	return parse(catalogYAML)
}

// LoadFile parses and validates an external catalog file. Used by the
// validate subcommand so catalog edits can be checked before a deploy.
func LoadFile(path string) ([]topicgraph.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]topicgraph.Topic, error) {
	// Schema validation runs on the loosely-typed document first, so a
	// malformed catalog fails with a field-level error instead of a
	// half-populated struct.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	// The validator expects JSON-shaped values, so round-trip the YAML
	// document through JSON before validating.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}
	jsonDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	topics := make([]topicgraph.Topic, len(cf.Topics))
	for i, ct := range cf.Topics {
		topics[i] = topicgraph.Topic{
			ID:            ct.ID,
			Name:          ct.Name,
			Description:   ct.Description,
			Category:      topicgraph.Category(ct.Category),
			Prerequisites: ct.Prerequisites,
			Difficulty:    ct.Difficulty,
			Priority:      topicgraph.Priority(ct.Priority),
			Covered:       ct.Covered,
		}
	}
	return topics, nil
}
