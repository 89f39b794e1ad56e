package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestComposeIncludesAllResults(t *testing.T) {
	llm := &fakeCompleter{out: "There are 347 albums and 275 artists."}
	c := NewComposer(llm)

	results := []StepResult{
		{Step: Step{Kind: KindDatabase, Content: "Count albums"}, Output: "347"},
		{Step: Step{Kind: KindDatabase, Content: "Count artists"}, Err: errors.New("no such table")},
	}
	answer, next := c.Compose(context.Background(), "How many albums and artists?", results, Context{})

	if answer != "There are 347 albums and 275 artists." {
		t.Errorf("Unexpected answer: %q", answer)
	}
	// Both the success text and the error message must reach the model.
	if !strings.Contains(llm.lastUser, "Result: 347") {
		t.Errorf("Success result missing from prompt: %q", llm.lastUser)
	}
	if !strings.Contains(llm.lastUser, "Error: no such table") {
		t.Errorf("Error result missing from prompt: %q", llm.lastUser)
	}
	if next.LastQuestion != "How many albums and artists?" || next.LastResponse != answer {
		t.Errorf("Context not advanced: %+v", next)
	}
	if len(next.History) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(next.History))
	}
}

func TestComposeIdempotenceGuard(t *testing.T) {
	llm := &fakeCompleter{out: "347 albums."}
	c := NewComposer(llm)

	_, conv := c.Compose(context.Background(), "How many albums?", nil, Context{})
	before := len(conv.History)

	_, conv = c.Compose(context.Background(), "How many albums?", nil, conv)

	if grew := len(conv.History) - before; grew > 0 {
		t.Errorf("Repeated question grew history by %d, expected at most 1 total", grew)
	}
	if len(conv.History) != 1 {
		t.Fatalf("Expected exactly 1 history entry across both turns, got %d", len(conv.History))
	}
}

func TestComposeRecoversFromCompletionFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("connection reset")}
	c := NewComposer(llm)

	answer, next := c.Compose(context.Background(), "How many albums?", nil, Context{})

	if !strings.Contains(answer, "connection reset") {
		t.Errorf("Expected readable error answer, got %q", answer)
	}
	if next.LastResponse != answer {
		t.Errorf("Error answer should still advance context: %+v", next)
	}
}

func TestChat(t *testing.T) {
	llm := &fakeCompleter{out: "Hello! Ask me about the database."}
	c := NewComposer(llm)

	answer, next := c.Chat(context.Background(), "hi there", Context{})

	if answer != "Hello! Ask me about the database." {
		t.Errorf("Unexpected chat answer: %q", answer)
	}
	if len(next.History) != 1 || next.History[0].Question != "hi there" {
		t.Errorf("Chat turn not recorded: %+v", next.History)
	}
	if !strings.Contains(llm.lastUser, "hi there") {
		t.Errorf("Question missing from chat prompt: %q", llm.lastUser)
	}
}
