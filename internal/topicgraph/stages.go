package topicgraph

import "strconv"

// Stage is an ordered bucket of topics whose prerequisites all live in
// earlier stages.
type Stage struct {
	Index  int
	Name   string
	Topics []Topic
}

// stageNames are the display bands the mind map uses. Stages past the
// named ones fall back to a numbered label.
var stageNames = []string{"Foundations", "Core Skills", "Advanced"}

// StageName returns the display name for a stage index.
func StageName(index int) string {
	if index >= 0 && index < len(stageNames) {
		return stageNames[index]
	}
	return "Stage " + strconv.Itoa(index+1)
}

// Stages groups the graph's topics into layers using longest-path
// layering: a topic with no prerequisites is at layer 0, otherwise its
// layer is one past the deepest of its prerequisites. By induction every
// prerequisite ends up in a strictly earlier stage. Topics within a
// stage keep registry input order.
func (g *Graph) Stages() []Stage {
	layer := make(map[string]int, len(g.topics))
	maxLayer := 0

	// Topological order guarantees prerequisites are layered first.
	for _, t := range g.topoOrder {
		l := 0
		for _, prereqID := range t.Prerequisites {
			if pl := layer[prereqID] + 1; pl > l {
				l = pl
			}
		}
		layer[t.ID] = l
		if l > maxLayer {
			maxLayer = l
		}
	}

	if len(g.topics) == 0 {
		return nil
	}

	stages := make([]Stage, maxLayer+1)
	for i := range stages {
		stages[i] = Stage{Index: i, Name: StageName(i)}
	}
	for i := range g.topics {
		l := layer[g.topics[i].ID]
		stages[l].Topics = append(stages[l].Topics, g.topics[i])
	}
	return stages
}
