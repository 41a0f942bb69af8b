package topicgraph

// dfs colors for cycle detection.
type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS path
	black              // fully explored
)

// validateTopics performs the structural checks required before a Graph
// can be built: unique IDs, no dangling prerequisite references, and no
// prerequisite cycles. The first problem found is returned; no partial
// graph ever escapes Build.
func validateTopics(topics []Topic) error {
	idSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		if idSet[t.ID] {
			return &DuplicateTopicError{TopicID: t.ID}
		}
		idSet[t.ID] = true
	}

	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			if !idSet[prereqID] {
				return &DanglingPrerequisiteError{TopicID: t.ID, PrerequisiteID: prereqID}
			}
		}
	}

	return detectCycle(topics)
}

// detectCycle runs a three-color depth-first traversal over prerequisite
// edges. An edge back to a gray node closes a cycle; the gray path from
// that node to the current one is the cycle's ID sequence.
func detectCycle(topics []Topic) error {
	byID := make(map[string]*Topic, len(topics))
	for i := range topics {
		byID[topics[i].ID] = &topics[i]
	}

	colors := make(map[string]color, len(topics))
	var path []string

	var visit func(id string) *CyclicDependencyError
	visit = func(id string) *CyclicDependencyError {
		colors[id] = gray
		path = append(path, id)

		for _, prereqID := range byID[id].Prerequisites {
			switch colors[prereqID] {
			case gray:
				// Back edge: the cycle is the path suffix starting at prereqID.
				start := 0
				for i, p := range path {
					if p == prereqID {
						start = i
						break
					}
				}
				cycle := make([]string, len(path)-start)
				copy(cycle, path[start:])
				return &CyclicDependencyError{Cycle: cycle}
			case white:
				if err := visit(prereqID); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		colors[id] = black
		return nil
	}

	for i := range topics {
		if colors[topics[i].ID] == white {
			if err := visit(topics[i].ID); err != nil {
				return err
			}
		}
	}
	return nil
}
