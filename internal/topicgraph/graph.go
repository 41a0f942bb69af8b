package topicgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the topic DAG with precomputed indices. A Graph is
// immutable after Build and safe for concurrent reads.
type Graph struct {
	topics     []Topic
	byID       map[string]*Topic
	inputIndex map[string]int
	byCategory map[Category][]Topic
	roots      []Topic
	dependents map[string][]string
	topoOrder  []Topic
	topoIndex  map[string]int
}

// Build constructs a Graph from the registry's topic slice. The input
// order is preserved and used everywhere a deterministic tie-break is
// needed. Build fails without returning a partial graph when the set
// contains duplicate IDs, dangling prerequisites, or a prerequisite
// cycle.
func Build(topics []Topic) (*Graph, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     slices.Clone(topics),
		byID:       make(map[string]*Topic, len(topics)),
		inputIndex: make(map[string]int, len(topics)),
		byCategory: make(map[Category][]Topic),
		dependents: make(map[string][]string),
		topoIndex:  make(map[string]int, len(topics)),
	}

	for i := range g.topics {
		g.byID[g.topics[i].ID] = &g.topics[i]
		g.inputIndex[g.topics[i].ID] = i
	}

	// Reverse edges, in input order of the dependent.
	for i := range g.topics {
		for _, prereqID := range g.topics[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.topics[i].ID)
		}
	}

	// Topological sort (Kahn's algorithm), ties broken by input order.
	inDegree := make(map[string]int, len(topics))
	for i := range g.topics {
		inDegree[g.topics[i].ID] = len(g.topics[i].Prerequisites)
	}

	var avail []string
	for i := range g.topics {
		if inDegree[g.topics[i].ID] == 0 {
			avail = append(avail, g.topics[i].ID)
		}
	}

	var topoOrder []Topic
	for len(avail) > 0 {
		// Ties among available topics are broken by input order.
		sort.Slice(avail, func(i, j int) bool {
			return g.inputIndex[avail[i]] < g.inputIndex[avail[j]]
		})
		id := avail[0]
		avail = avail[1:]

		topoOrder = append(topoOrder, *g.byID[id])

		for _, depID := range g.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				avail = append(avail, depID)
			}
		}
	}

	g.topoOrder = topoOrder
	for i, t := range g.topoOrder {
		g.topoIndex[t.ID] = i
	}

	for i := range g.topics {
		if len(g.topics[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.topics[i])
		}
	}

	// Group by category, preserving input order within each group.
	for i := range g.topics {
		t := g.topics[i]
		g.byCategory[t.Category] = append(g.byCategory[t.Category], t)
	}

	return g, nil
}

// Topic returns a topic by ID, or an error if not found.
func (g *Graph) Topic(id string) (Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// Topics returns all topics in registry input order.
func (g *Graph) Topics() []Topic {
	return slices.Clone(g.topics)
}

// ByCategory returns all topics in a category, in registry input order.
func (g *Graph) ByCategory(c Category) []Topic {
	return slices.Clone(g.byCategory[c])
}

// Roots returns all topics with no prerequisites.
func (g *Graph) Roots() []Topic {
	return slices.Clone(g.roots)
}

// Prerequisites returns the direct prerequisite topics for a topic ID,
// in the order the topic declares them.
func (g *Graph) Prerequisites(id string) []Topic {
	t, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Topic, 0, len(t.Prerequisites))
	for _, prereqID := range t.Prerequisites {
		result = append(result, *g.byID[prereqID])
	}
	return result
}

// Dependents returns the topics that directly list the given topic as a
// prerequisite.
func (g *Graph) Dependents(id string) []Topic {
	depIDs := g.dependents[id]
	result := make([]Topic, 0, len(depIDs))
	for _, depID := range depIDs {
		result = append(result, *g.byID[depID])
	}
	return result
}

// IsUnlocked returns true if every direct prerequisite of the topic is
// in the completed set. Unlocking is deliberately not transitive: only
// direct prerequisites are checked. Unknown IDs are never unlocked.
func (g *Graph) IsUnlocked(id string, completed map[string]bool) bool {
	t, ok := g.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range t.Prerequisites {
		if !completed[prereqID] {
			return false
		}
	}
	return true
}

// State returns the topic's state relative to the completed set.
func (g *Graph) State(id string, completed map[string]bool) TopicState {
	if completed[id] {
		return StateCompleted
	}
	if g.IsUnlocked(id, completed) {
		return StateUnlocked
	}
	return StateLocked
}

// TransitiveClosure returns every topic reachable from the given topic
// by following prerequisite edges, i.e. everything that must eventually
// be studied before it. Results are in registry input order.
func (g *Graph) TransitiveClosure(id string) []Topic {
	t, ok := g.byID[id]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	stack := slices.Clone(t.Prerequisites)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, g.byID[cur].Prerequisites...)
	}

	var result []Topic
	for i := range g.topics {
		if seen[g.topics[i].ID] {
			result = append(result, g.topics[i])
		}
	}
	return result
}

// TopologicalOrder returns all topics in a valid topological order.
// The order is deterministic: among topics whose prerequisites are all
// satisfied, registry input order wins.
func (g *Graph) TopologicalOrder() []Topic {
	return slices.Clone(g.topoOrder)
}
