package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A test explanation object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":      map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"level":      map[string]any{"type": "string", "enum": []any{"beginner", "intermediate", "advanced"}},
			},
			"required": []any{"title", "difficulty"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid document", `{"title":"Covariance","difficulty":2,"level":"beginner"}`, false},
		{"optional field omitted", `{"title":"Brownian Motion","difficulty":4}`, false},
		{"required field missing", `{"title":"Duration"}`, true},
		{"wrong type", `{"title":"PCA","difficulty":"hard"}`, true},
		{"value outside enum", `{"title":"VaR","difficulty":3,"level":"expert"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty input", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("error should carry the raw content, got %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CachedSchemaReused(t *testing.T) {
	schema := testSchema()
	raw := json.RawMessage(`{"title":"Ito","difficulty":5}`)

	for range 3 {
		if err := validateResponse(schema, raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, ok := compiledSchemas.Load(schema.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
