package topicgraph

import (
	"errors"
	"testing"
)

// chainTopics is the A -> B -> C fixture used across the graph tests:
// A has no prerequisites, B requires A, C requires B.
func chainTopics() []Topic {
	return []Topic{
		{ID: "A", Name: "Vectors", Category: CategoryLinearAlgebra, Difficulty: 1, Priority: PriorityHigh, Covered: true},
		{ID: "B", Name: "Matrices", Category: CategoryLinearAlgebra, Prerequisites: []string{"A"}, Difficulty: 2, Priority: PriorityHigh, Covered: true},
		{ID: "C", Name: "Eigenvalues", Category: CategoryLinearAlgebra, Prerequisites: []string{"B"}, Difficulty: 3, Priority: PriorityMedium},
	}
}

func mustBuild(t *testing.T, topics []Topic) *Graph {
	t.Helper()
	g, err := Build(topics)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	return g
}

func TestBuild_DuplicateID(t *testing.T) {
	topics := []Topic{
		{ID: "A", Category: CategoryCalculus},
		{ID: "A", Category: CategoryCalculus},
	}
	_, err := Build(topics)
	var dup *DuplicateTopicError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateTopicError", err)
	}
	if dup.TopicID != "A" {
		t.Errorf("got topic %q, want %q", dup.TopicID, "A")
	}
}

func TestBuild_DanglingPrerequisite(t *testing.T) {
	topics := []Topic{
		{ID: "A", Category: CategoryCalculus, Prerequisites: []string{"missing"}},
	}
	_, err := Build(topics)
	var dangling *DanglingPrerequisiteError
	if !errors.As(err, &dangling) {
		t.Fatalf("got %v, want DanglingPrerequisiteError", err)
	}
	if dangling.TopicID != "A" || dangling.PrerequisiteID != "missing" {
		t.Errorf("got (%q, %q), want (A, missing)", dangling.TopicID, dangling.PrerequisiteID)
	}
}

func TestBuild_CyclicDependency(t *testing.T) {
	topics := []Topic{
		{ID: "A", Category: CategoryProbability, Prerequisites: []string{"D"}},
		{ID: "D", Category: CategoryProbability, Prerequisites: []string{"A"}},
	}
	g, err := Build(topics)
	if g != nil {
		t.Fatal("Build returned a graph despite a cycle")
	}
	var cyc *CyclicDependencyError
	if !errors.As(err, &cyc) {
		t.Fatalf("got %v, want CyclicDependencyError", err)
	}
	if len(cyc.Cycle) != 2 {
		t.Fatalf("got cycle %v, want 2 topics", cyc.Cycle)
	}
	ids := map[string]bool{cyc.Cycle[0]: true, cyc.Cycle[1]: true}
	if !ids["A"] || !ids["D"] {
		t.Errorf("got cycle %v, want A and D", cyc.Cycle)
	}
}

func TestBuild_LongerCycle(t *testing.T) {
	topics := []Topic{
		{ID: "A", Category: CategoryStatistics, Prerequisites: []string{"C"}},
		{ID: "B", Category: CategoryStatistics, Prerequisites: []string{"A"}},
		{ID: "C", Category: CategoryStatistics, Prerequisites: []string{"B"}},
	}
	_, err := Build(topics)
	var cyc *CyclicDependencyError
	if !errors.As(err, &cyc) {
		t.Fatalf("got %v, want CyclicDependencyError", err)
	}
	if len(cyc.Cycle) != 3 {
		t.Errorf("got cycle %v, want 3 topics", cyc.Cycle)
	}
}

func TestTopic(t *testing.T) {
	g := mustBuild(t, chainTopics())

	topic, err := g.Topic("B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.Name != "Matrices" {
		t.Errorf("got name %q, want %q", topic.Name, "Matrices")
	}

	if _, err := g.Topic("nonexistent"); err == nil {
		t.Error("expected error for nonexistent topic, got nil")
	}
}

func TestTopics_PreservesInputOrder(t *testing.T) {
	g := mustBuild(t, chainTopics())
	topics := g.Topics()
	want := []string{"A", "B", "C"}
	for i, id := range want {
		if topics[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, topics[i].ID, id)
		}
	}
}

func TestPrerequisitesAndDependents(t *testing.T) {
	g := mustBuild(t, chainTopics())

	prereqs := g.Prerequisites("C")
	if len(prereqs) != 1 || prereqs[0].ID != "B" {
		t.Errorf("Prerequisites(C): got %v, want [B]", prereqs)
	}
	if got := g.Prerequisites("A"); len(got) != 0 {
		t.Errorf("Prerequisites(A): got %v, want none", got)
	}

	deps := g.Dependents("A")
	if len(deps) != 1 || deps[0].ID != "B" {
		t.Errorf("Dependents(A): got %v, want [B]", deps)
	}
}

func TestIsUnlocked(t *testing.T) {
	g := mustBuild(t, chainTopics())
	empty := map[string]bool{}

	if !g.IsUnlocked("A", empty) {
		t.Error("A has no prerequisites and should be unlocked")
	}
	if g.IsUnlocked("B", empty) {
		t.Error("B should be locked with nothing completed")
	}
	if !g.IsUnlocked("B", map[string]bool{"A": true}) {
		t.Error("B should be unlocked once A is completed")
	}
	// Unlocking checks direct prerequisites only: completing B alone
	// unlocks C even though A is incomplete.
	if !g.IsUnlocked("C", map[string]bool{"B": true}) {
		t.Error("C should be unlocked when its direct prerequisite B is completed")
	}
	if g.IsUnlocked("nonexistent", empty) {
		t.Error("unknown topics are never unlocked")
	}
}

func TestState(t *testing.T) {
	g := mustBuild(t, chainTopics())
	completed := map[string]bool{"A": true}

	tests := []struct {
		id   string
		want TopicState
	}{
		{"A", StateCompleted},
		{"B", StateUnlocked},
		{"C", StateLocked},
	}
	for _, tt := range tests {
		if got := g.State(tt.id, completed); got != tt.want {
			t.Errorf("State(%q): got %s, want %s", tt.id, got.Label(), tt.want.Label())
		}
	}
}

func TestTopicStateStrings(t *testing.T) {
	tests := []struct {
		state TopicState
		wire  string
		label string
	}{
		{StateLocked, "locked", "Locked"},
		{StateUnlocked, "unlocked", "Unlocked"},
		{StateCompleted, "completed", "Completed"},
		{TopicState(99), "unknown", "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.wire {
			t.Errorf("String() = %q, want %q", got, tt.wire)
		}
		if got := tt.state.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
	}
}

func TestTransitiveClosure(t *testing.T) {
	topics := append(chainTopics(),
		Topic{ID: "D", Category: CategoryStatistics, Prerequisites: []string{"B", "A"}},
	)
	g := mustBuild(t, topics)

	closure := g.TransitiveClosure("D")
	ids := map[string]bool{}
	for _, topic := range closure {
		ids[topic.ID] = true
	}
	if len(ids) != 2 || !ids["A"] || !ids["B"] {
		t.Errorf("TransitiveClosure(D): got %v, want {A, B}", ids)
	}

	if got := g.TransitiveClosure("A"); len(got) != 0 {
		t.Errorf("TransitiveClosure(A): got %v, want none", got)
	}
}

func TestTopologicalOrder(t *testing.T) {
	topics := []Topic{
		{ID: "z-root", Category: CategoryCalculus},
		{ID: "a-root", Category: CategoryCalculus},
		{ID: "child", Category: CategoryCalculus, Prerequisites: []string{"a-root", "z-root"}},
	}
	g := mustBuild(t, topics)

	topo := g.TopologicalOrder()
	if len(topo) != 3 {
		t.Fatalf("got %d topics, want 3", len(topo))
	}

	// Ties broken by input order: z-root precedes a-root despite sorting
	// last alphabetically.
	if topo[0].ID != "z-root" || topo[1].ID != "a-root" {
		t.Errorf("got order %q, %q; want z-root, a-root", topo[0].ID, topo[1].ID)
	}

	pos := make(map[string]int, len(topo))
	for i, topic := range topo {
		pos[topic.ID] = i
	}
	for _, topic := range topo {
		for _, prereqID := range topic.Prerequisites {
			if pos[prereqID] >= pos[topic.ID] {
				t.Errorf("topic %q appears before prerequisite %q", topic.ID, prereqID)
			}
		}
	}
}

func TestTopics_ReturnsCopy(t *testing.T) {
	g := mustBuild(t, chainTopics())
	a := g.Topics()
	a[0].Name = "MUTATED"
	b := g.Topics()
	if b[0].Name == "MUTATED" {
		t.Error("Topics did not return a defensive copy")
	}
}
