// Package vectorstore persists study-note passages in Weaviate and
// serves semantic search over them. Vectors come from the llm.Embedder;
// Weaviate only stores and indexes them.
package vectorstore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"
)

// PassageClassName is the Weaviate class holding indexed passages.
const PassageClassName = "StudyPassage"

// batchSize is the number of passages imported per batch request.
const batchSize = 100

// Passage is one indexed study-notes excerpt.
type Passage struct {
	PassageID string
	TopicID   string
	Category  string
	Source    string
	Title     string
	Content   string
}

// Result is a search hit with its certainty score.
type Result struct {
	Passage   Passage
	Certainty float64
}

// Store wraps a Weaviate client for passage indexing and search.
type Store struct {
	client *weaviate.Client
	log    *zap.SugaredLogger
}

// New connects to the Weaviate instance at the given URL.
func New(url string, log *zap.SugaredLogger) (*Store, error) {
	cfg := weaviate.Config{
		Host:   url,
		Scheme: "http",
	}
	if strings.HasPrefix(url, "https://") {
		cfg.Scheme = "https"
		cfg.Host = strings.TrimPrefix(url, "https://")
	} else if strings.HasPrefix(url, "http://") {
		cfg.Host = strings.TrimPrefix(url, "http://")
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Store{client: client, log: log}, nil
}

// passageSchema returns the Weaviate class definition for StudyPassage.
// Vectorizer is "none": vectors are supplied at import time.
func passageSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       PassageClassName,
		Description: "Study-notes passage indexed for semantic retrieval",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{
				Name:            "passageId",
				DataType:        []string{"text"},
				Description:     "Stable identifier derived from source and chunk",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "topicId",
				DataType:        []string{"text"},
				Description:     "Topic this passage belongs to",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "category",
				DataType:        []string{"text"},
				Description:     "Content area of the topic",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:         "source",
				DataType:     []string{"text"},
				Description:  "Originating notes file",
				Tokenization: "field",
			},
			{
				Name:         "title",
				DataType:     []string{"text"},
				Tokenization: "word",
			},
			{
				Name:         "content",
				DataType:     []string{"text"},
				Tokenization: "word",
			},
		},
	}
}

// EnsureSchema creates the StudyPassage class if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	exists, err := s.client.Schema().ClassExistenceChecker().
		WithClassName(PassageClassName).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("check class %s: %w", PassageClassName, err)
	}
	if exists {
		return nil
	}

	if err := s.client.Schema().ClassCreator().WithClass(passageSchema()).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", PassageClassName, err)
	}
	s.log.Infow("created weaviate class", "class", PassageClassName)
	return nil
}

// IndexPassages imports passages with their vectors in batches.
// Object IDs are content-derived, so re-indexing the same passages is
// an upsert rather than a duplicate insert. Returns the number of
// objects stored.
func (s *Store) IndexPassages(ctx context.Context, passages []Passage, vectors [][]float32) (int, error) {
	if len(passages) != len(vectors) {
		return 0, fmt.Errorf("passage count %d does not match vector count %d", len(passages), len(vectors))
	}
	if len(passages) == 0 {
		return 0, nil
	}

	indexed := 0
	for i := 0; i < len(passages); i += batchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		end := min(i+batchSize, len(passages))
		batch := passages[i:end]

		objects := make([]*models.Object, len(batch))
		for j, p := range batch {
			objects[j] = &models.Object{
				Class:  PassageClassName,
				ID:     passageUUID(p),
				Vector: vectors[i+j],
				Properties: map[string]any{
					"passageId": p.PassageID,
					"topicId":   p.TopicID,
					"category":  p.Category,
					"source":    p.Source,
					"title":     p.Title,
					"content":   p.Content,
				},
			}
		}

		result, err := s.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
		if err != nil {
			return indexed, fmt.Errorf("batch import: %w", err)
		}
		for _, obj := range result {
			if obj.Result != nil && obj.Result.Errors == nil {
				indexed++
			}
		}

		s.log.Infow("indexed passage batch", "count", len(batch), "total", indexed)
	}

	return indexed, nil
}

// SearchOptions narrows a semantic search.
type SearchOptions struct {
	// TopicID, when set, restricts results to one topic.
	TopicID string

	// Category, when set, restricts results to one content area.
	Category string

	// Limit caps the number of results. Defaults to 5.
	Limit int
}

// Search runs a near-vector query and returns passages ranked by
// certainty.
func (s *Store) Search(ctx context.Context, vector []float32, opts SearchOptions) ([]Result, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)

	fields := []graphql.Field{
		{Name: "passageId"},
		{Name: "topicId"},
		{Name: "category"},
		{Name: "source"},
		{Name: "title"},
		{Name: "content"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "certainty"},
		}},
	}

	query := s.client.GraphQL().Get().
		WithClassName(PassageClassName).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit)

	if where := buildWhere(opts); where != nil {
		query = query.WithWhere(where)
	}

	result, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("weaviate search: %s", result.Errors[0].Message)
	}

	return parseSearchResults(result.Data)
}

// buildWhere returns a filter for the options, or nil when none apply.
func buildWhere(opts SearchOptions) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	if opts.TopicID != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"topicId"}).
			WithOperator(filters.Equal).
			WithValueString(opts.TopicID))
	}
	if opts.Category != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"category"}).
			WithOperator(filters.Equal).
			WithValueString(opts.Category))
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(operands)
	}
}

// passageUUID derives a stable object ID from the passage identity.
func passageUUID(p Passage) strfmt.UUID {
	hash := sha256.Sum256([]byte(p.PassageID))
	id, _ := uuid.FromBytes(hash[:16])
	return strfmt.UUID(id.String())
}
