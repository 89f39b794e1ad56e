package agent

import (
	"strings"
	"testing"
)

func TestMergeAppendsNewHistory(t *testing.T) {
	old := Context{
		History:      []Turn{{Question: "q1", Response: "a1"}},
		LastQuestion: "q1",
		LastResponse: "a1",
	}
	update := Context{
		History:      []Turn{{Question: "q1", Response: "a1"}, {Question: "q2", Response: "a2"}},
		LastQuestion: "q2",
		LastResponse: "a2",
	}

	merged := Merge(old, update)

	if len(merged.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d: %v", len(merged.History), merged.History)
	}
	if merged.History[1].Question != "q2" {
		t.Errorf("Expected q2 appended, got %+v", merged.History[1])
	}
	if merged.LastQuestion != "q2" || merged.LastResponse != "a2" {
		t.Errorf("Expected newer snapshot to win: %+v", merged)
	}
}

func TestMergeIsIdempotentForSameSnapshot(t *testing.T) {
	snapshot := Context{
		History:      []Turn{{Question: "q1", Response: "a1"}},
		LastQuestion: "q1",
		LastResponse: "a1",
	}

	merged := Merge(snapshot, snapshot)

	if len(merged.History) != 1 {
		t.Fatalf("Expected no duplicate entries, got %d", len(merged.History))
	}
}

func TestMergeIsIdempotentForMultiTurnSnapshot(t *testing.T) {
	snapshot := Context{
		History: []Turn{
			{Question: "q1", Response: "a1"},
			{Question: "q2", Response: "a2"},
		},
		LastQuestion: "q2",
		LastResponse: "a2",
	}

	merged := Merge(snapshot, snapshot)

	if len(merged.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d: %v", len(merged.History), merged.History)
	}
	for i, want := range snapshot.History {
		if merged.History[i] != want {
			t.Errorf("History[%d] = %+v, want %+v", i, merged.History[i], want)
		}
	}
}

func TestMergeExtendedMultiTurnHistory(t *testing.T) {
	old := Context{
		History: []Turn{
			{Question: "q1", Response: "a1"},
			{Question: "q2", Response: "a2"},
		},
		LastQuestion: "q2",
		LastResponse: "a2",
	}
	update := advance(old, "q3", "a3")

	merged := Merge(old, update)

	if len(merged.History) != 3 {
		t.Fatalf("Expected 3 history entries, got %d: %v", len(merged.History), merged.History)
	}
	if merged.History[2] != (Turn{Question: "q3", Response: "a3"}) {
		t.Errorf("Expected q3 appended last, got %+v", merged.History[2])
	}
	if merged.LastQuestion != "q3" || merged.LastResponse != "a3" {
		t.Errorf("Expected newest turn to win: %+v", merged)
	}
}

func TestMergeKeepsOldValuesWhenUpdateEmpty(t *testing.T) {
	old := Context{
		History:      []Turn{{Question: "q1", Response: "a1"}},
		LastQuestion: "q1",
		LastResponse: "a1",
	}

	merged := Merge(old, Context{})

	if len(merged.History) != 1 || merged.LastQuestion != "q1" || merged.LastResponse != "a1" {
		t.Errorf("Expected old context preserved, got %+v", merged)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	old := Context{History: []Turn{{Question: "q1", Response: "a1"}}}
	update := Context{History: []Turn{{Question: "q2", Response: "a2"}}}

	Merge(old, update)

	if len(old.History) != 1 || len(update.History) != 1 {
		t.Error("Merge mutated an input context")
	}
}

func TestPromptText(t *testing.T) {
	empty := Context{}
	if !strings.Contains(empty.PromptText(), "no prior conversation") {
		t.Errorf("Unexpected empty prompt text: %q", empty.PromptText())
	}

	c := Context{History: []Turn{{Question: "how many albums?", Response: "347"}}}
	text := c.PromptText()
	if !strings.Contains(text, "how many albums?") || !strings.Contains(text, "347") {
		t.Errorf("Prompt text missing history: %q", text)
	}
}
