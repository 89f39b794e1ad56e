package agent

import (
	"context"
	"log"
	"strings"
)

// InputType is the coarse routing category for a user question.
type InputType string

const (
	InputDatabaseQuery InputType = "DATABASE_QUERY"
	InputGreeting      InputType = "GREETING"
	InputChitchat      InputType = "CHITCHAT"
	InputFarewell      InputType = "FAREWELL"
)

// RequiresDatabase reports whether the input needs the full
// discover/plan/dispatch pipeline.
func (t InputType) RequiresDatabase() bool {
	return t == InputDatabaseQuery
}

// Classifier decides whether a question needs database access at all.
// Classification errors and unknown categories default to DATABASE_QUERY so
// a flaky model never hides data questions.
type Classifier struct {
	LLM    Completer
	Prompt string
}

func NewClassifier(llm Completer) *Classifier {
	return &Classifier{LLM: llm, Prompt: classifierSystemPrompt}
}

func (c *Classifier) Classify(ctx context.Context, question string) InputType {
	out, err := c.LLM.Complete(ctx, c.Prompt, question)
	if err != nil {
		log.Printf("classifier: completion failed, assuming database query: %v", err)
		return InputDatabaseQuery
	}

	switch t := InputType(strings.ToUpper(strings.TrimSpace(out))); t {
	case InputGreeting, InputChitchat, InputFarewell:
		return t
	default:
		return InputDatabaseQuery
	}
}
