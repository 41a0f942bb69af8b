package topicgraph

import (
	"fmt"
	"strings"
)

// DuplicateTopicError reports a topic ID that appears more than once in
// the registry.
type DuplicateTopicError struct {
	TopicID string
}

func (e *DuplicateTopicError) Error() string {
	return fmt.Sprintf("duplicate topic ID: %q", e.TopicID)
}

// DanglingPrerequisiteError reports a prerequisite reference to a topic
// ID that is absent from the registry.
type DanglingPrerequisiteError struct {
	TopicID        string
	PrerequisiteID string
}

func (e *DanglingPrerequisiteError) Error() string {
	return fmt.Sprintf("topic %q references nonexistent prerequisite %q", e.TopicID, e.PrerequisiteID)
}

// CyclicDependencyError reports a prerequisite cycle. Cycle holds the
// topic IDs along the cycle in order, each ID appearing once.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	path := strings.Join(e.Cycle, " -> ")
	if len(e.Cycle) > 0 {
		path += " -> " + e.Cycle[0]
	}
	return fmt.Sprintf("prerequisite cycle detected: %s", path)
}
