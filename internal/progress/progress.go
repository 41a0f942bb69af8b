// Package progress computes completion summaries and next-topic
// recommendations. Every function is a pure view over a graph and a
// caller-supplied completed set; the hosting application owns all state
// and passes a fresh snapshot per call.
package progress

import (
	"math"

	"github.com/quantslearn/quantslearn/internal/topicgraph"
)

// CategoryCompletion summarizes one category's progress.
type CategoryCompletion struct {
	Category  topicgraph.Category `json:"category"`
	Name      string              `json:"name"`
	Completed int                 `json:"completed"`
	Total     int                 `json:"total"`
	Percent   int                 `json:"percent"`
}

// ByCategory computes per-category completion for every declared
// category, including empty ones (Total 0 yields Percent 0). Results
// follow the category display order.
func ByCategory(topics []topicgraph.Topic, completed map[string]bool) []CategoryCompletion {
	counts := make(map[topicgraph.Category]*CategoryCompletion)
	for _, c := range topicgraph.AllCategories() {
		counts[c] = &CategoryCompletion{Category: c, Name: topicgraph.CategoryDisplayName(c)}
	}

	for _, t := range topics {
		cc, ok := counts[t.Category]
		if !ok {
			// Categories outside the declared set still get counted.
			cc = &CategoryCompletion{Category: t.Category, Name: topicgraph.CategoryDisplayName(t.Category)}
			counts[t.Category] = cc
		}
		cc.Total++
		if completed[t.ID] {
			cc.Completed++
		}
	}

	var result []CategoryCompletion
	for _, c := range topicgraph.AllCategories() {
		cc := counts[c]
		if cc.Total > 0 {
			cc.Percent = int(math.Round(100 * float64(cc.Completed) / float64(cc.Total)))
		}
		result = append(result, *cc)
		delete(counts, c)
	}
	// Undeclared categories, if any, follow in topic order.
	for _, t := range topics {
		if cc, ok := counts[t.Category]; ok {
			if cc.Total > 0 {
				cc.Percent = int(math.Round(100 * float64(cc.Completed) / float64(cc.Total)))
			}
			result = append(result, *cc)
			delete(counts, t.Category)
		}
	}
	return result
}

// Overall returns total completion across all topics.
func Overall(topics []topicgraph.Topic, completed map[string]bool) CategoryCompletion {
	cc := CategoryCompletion{Name: "Overall"}
	for _, t := range topics {
		cc.Total++
		if completed[t.ID] {
			cc.Completed++
		}
	}
	if cc.Total > 0 {
		cc.Percent = int(math.Round(100 * float64(cc.Completed) / float64(cc.Total)))
	}
	return cc
}

// Recommend returns up to limit topics to study next, drawn from the
// candidate list (usually the whole registry, sometimes a category or
// covered-only view). The primary rule picks incomplete candidates whose
// direct prerequisites are all completed, in candidate order. When
// nothing is unlockable, the fallback picks incomplete difficulty-1
// candidates in the same order, so a learner always has somewhere to
// start.
func Recommend(g *topicgraph.Graph, topics []topicgraph.Topic, completed map[string]bool, limit int) []topicgraph.Topic {
	if limit <= 0 {
		return nil
	}

	var picks []topicgraph.Topic
	for _, t := range topics {
		if !completed[t.ID] && g.IsUnlocked(t.ID, completed) {
			picks = append(picks, t)
		}
	}

	if len(picks) == 0 {
		for _, t := range topics {
			if !completed[t.ID] && t.Difficulty == 1 {
				picks = append(picks, t)
			}
		}
	}

	if len(picks) > limit {
		picks = picks[:limit]
	}
	return picks
}
