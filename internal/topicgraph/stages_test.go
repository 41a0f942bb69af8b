package topicgraph

import "testing"

func TestStages_Chain(t *testing.T) {
	g := mustBuild(t, chainTopics())

	stages := g.Stages()
	if len(stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(stages))
	}

	want := [][]string{{"A"}, {"B"}, {"C"}}
	for i, stage := range stages {
		if stage.Index != i {
			t.Errorf("stage %d: got index %d", i, stage.Index)
		}
		if len(stage.Topics) != len(want[i]) {
			t.Fatalf("stage %d: got %d topics, want %d", i, len(stage.Topics), len(want[i]))
		}
		for j, id := range want[i] {
			if stage.Topics[j].ID != id {
				t.Errorf("stage %d position %d: got %q, want %q", i, j, stage.Topics[j].ID, id)
			}
		}
	}
}

func TestStages_LongestPathLayering(t *testing.T) {
	// D depends on both a root and a layer-1 topic; longest path wins,
	// so D lands in layer 2, not layer 1.
	topics := []Topic{
		{ID: "A", Category: CategoryProbability},
		{ID: "B", Category: CategoryProbability, Prerequisites: []string{"A"}},
		{ID: "D", Category: CategoryProbability, Prerequisites: []string{"A", "B"}},
	}
	g := mustBuild(t, topics)

	stages := g.Stages()
	if len(stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(stages))
	}
	if len(stages[2].Topics) != 1 || stages[2].Topics[0].ID != "D" {
		t.Errorf("stage 2: got %v, want [D]", stages[2].Topics)
	}
}

func TestStages_Monotonicity(t *testing.T) {
	topics := []Topic{
		{ID: "vectors", Category: CategoryLinearAlgebra},
		{ID: "limits", Category: CategoryCalculus},
		{ID: "matrices", Category: CategoryLinearAlgebra, Prerequisites: []string{"vectors"}},
		{ID: "derivatives", Category: CategoryCalculus, Prerequisites: []string{"limits"}},
		{ID: "optimization", Category: CategoryCalculus, Prerequisites: []string{"derivatives", "matrices"}},
		{ID: "regression", Category: CategoryStatistics, Prerequisites: []string{"optimization", "matrices"}},
	}
	g := mustBuild(t, topics)

	stageOf := make(map[string]int)
	for _, stage := range g.Stages() {
		for _, topic := range stage.Topics {
			stageOf[topic.ID] = stage.Index
		}
	}
	if len(stageOf) != len(topics) {
		t.Fatalf("staged %d topics, want %d", len(stageOf), len(topics))
	}

	for _, topic := range topics {
		for _, prereqID := range topic.Prerequisites {
			if stageOf[prereqID] >= stageOf[topic.ID] {
				t.Errorf("prerequisite %q (stage %d) not strictly before %q (stage %d)",
					prereqID, stageOf[prereqID], topic.ID, stageOf[topic.ID])
			}
		}
	}
}

func TestStages_InputOrderWithinStage(t *testing.T) {
	topics := []Topic{
		{ID: "z", Category: CategoryStatistics},
		{ID: "m", Category: CategoryStatistics},
		{ID: "a", Category: CategoryStatistics},
	}
	g := mustBuild(t, topics)

	stages := g.Stages()
	if len(stages) != 1 {
		t.Fatalf("got %d stages, want 1", len(stages))
	}
	want := []string{"z", "m", "a"}
	for i, id := range want {
		if stages[0].Topics[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, stages[0].Topics[i].ID, id)
		}
	}
}

func TestStages_Empty(t *testing.T) {
	g := mustBuild(t, nil)
	if stages := g.Stages(); stages != nil {
		t.Errorf("got %v, want nil for empty graph", stages)
	}
}

func TestStageName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "Foundations"},
		{1, "Core Skills"},
		{2, "Advanced"},
		{3, "Stage 4"},
		{7, "Stage 8"},
	}
	for _, tt := range tests {
		if got := StageName(tt.index); got != tt.want {
			t.Errorf("StageName(%d): got %q, want %q", tt.index, got, tt.want)
		}
	}
}
