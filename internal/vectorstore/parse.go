package vectorstore

import "github.com/weaviate/weaviate/entities/models"

// parseSearchResults walks the GraphQL Get response into typed results.
// Malformed objects are skipped rather than failing the whole query.
func parseSearchResults(data map[string]models.JSONObject) ([]Result, error) {
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return nil, nil
	}

	objects, ok := get[PassageClassName].([]any)
	if !ok {
		return nil, nil
	}

	results := make([]Result, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]any)
		if !ok {
			continue
		}

		r := Result{
			Passage: Passage{
				PassageID: getString(m, "passageId"),
				TopicID:   getString(m, "topicId"),
				Category:  getString(m, "category"),
				Source:    getString(m, "source"),
				Title:     getString(m, "title"),
				Content:   getString(m, "content"),
			},
		}

		if additional, ok := m["_additional"].(map[string]any); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				r.Certainty = certainty
			}
		}

		results = append(results, r)
	}

	return results, nil
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
