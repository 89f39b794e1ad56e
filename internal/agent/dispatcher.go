package agent

import (
	"context"
	"fmt"
	"log"
)

// QueryExecutor is the query-execution collaborator behind Database and
// Inference steps.
type QueryExecutor interface {
	Query(ctx context.Context, text string) (string, error)
}

// HandlerFunc executes one plan step's content and returns its textual result.
type HandlerFunc func(ctx context.Context, content string) (string, error)

// StepResult pairs a step with its outcome. Err is set when the handler
// failed; Output holds the success text otherwise. Results are never
// mutated after creation.
type StepResult struct {
	Step   Step
	Output string
	Err    error
}

// Render formats the result the way the composer consumes it: the step
// description followed by its result or error message.
func (r StepResult) Render() string {
	if r.Err != nil {
		return fmt.Sprintf("Step: %s\nError: %v", r.Step, r.Err)
	}
	return fmt.Sprintf("Step: %s\nResult: %s", r.Step, r.Output)
}

const noStepsMessage = "No results were generated as no valid steps were found."

// Dispatcher routes plan steps to the handler registered for their kind.
type Dispatcher struct {
	handlers map[StepKind]HandlerFunc
}

// NewDispatcher wires the default handler set: Database and Inference steps
// go to the query executor, Research steps to the knowledge base, and
// General steps pass their own content through untouched.
func NewDispatcher(db QueryExecutor, research *ResearchAgent) *Dispatcher {
	d := &Dispatcher{handlers: make(map[StepKind]HandlerFunc)}
	d.Register(KindDatabase, db.Query)
	d.Register(KindInference, db.Query)
	d.Register(KindResearch, func(_ context.Context, content string) (string, error) {
		return research.Research(content), nil
	})
	d.Register(KindGeneral, func(_ context.Context, content string) (string, error) {
		return content, nil
	})
	return d
}

func (d *Dispatcher) Register(kind StepKind, h HandlerFunc) {
	d.handlers[kind] = h
}

// Execute runs every step in plan order and returns exactly one result per
// step. A failing handler is recorded as an Err outcome and never halts the
// remaining steps: one bad query must not blank out the rest of the answer.
// An empty plan short-circuits to a single synthetic result.
func (d *Dispatcher) Execute(ctx context.Context, plan Plan) []StepResult {
	if len(plan) == 0 {
		step := Step{Kind: KindGeneral, Content: "No valid steps were found in the plan"}
		return []StepResult{{Step: step, Output: noStepsMessage}}
	}

	results := make([]StepResult, 0, len(plan))
	for _, step := range plan {
		handler, ok := d.handlers[step.Kind]
		if !ok {
			results = append(results, StepResult{Step: step, Err: fmt.Errorf("no handler registered for %s steps", step.Kind)})
			continue
		}

		out, err := handler(ctx, step.Content)
		if err != nil {
			log.Printf("dispatcher: %s step failed: %v", step.Kind, err)
			results = append(results, StepResult{Step: step, Err: err})
			continue
		}
		results = append(results, StepResult{Step: step, Output: out})
	}
	return results
}
