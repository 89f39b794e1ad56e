package agent

import (
	"context"
	"fmt"
	"log"
)

// Fallback step contents when planning produces nothing usable.
const (
	clarificationMessage = "I'd love to help! Please ask a specific question about the database."
	planningErrorMessage = "Error occurred while creating plan"
)

// Planner turns a natural-language question into an ordered plan of typed
// steps. It never returns an error: planning failures degrade into a single
// General fallback step.
type Planner struct {
	LLM    Completer
	Prompt string
}

func NewPlanner(llm Completer) *Planner {
	return &Planner{LLM: llm, Prompt: plannerSystemPrompt}
}

func (p *Planner) CreatePlan(ctx context.Context, question string, conv Context) Plan {
	user := fmt.Sprintf("Previous context:\n%s\nQuestion: %s\n\nCreate a focused plan with appropriate action steps.",
		conv.PromptText(), question)

	out, err := p.LLM.Complete(ctx, p.Prompt, user)
	if err != nil {
		log.Printf("planner: completion failed: %v", err)
		return Plan{{Kind: KindGeneral, Content: planningErrorMessage}}
	}

	plan := ParsePlan(out)
	if len(plan) == 0 {
		log.Printf("planner: no valid steps found, falling back to clarification")
		return Plan{{Kind: KindGeneral, Content: clarificationMessage}}
	}
	return plan
}
