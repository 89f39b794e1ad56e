// Package supervisor orchestrates the question pipeline as a state
// graph: classify the input, discover the schema, plan, execute, and
// compose the final answer.
package supervisor

import (
	"context"
	"fmt"
	"log"

	"github.com/smallnest/langgraphgo/graph"

	"github.com/hgrant/datascribe/internal/agent"
	"github.com/hgrant/datascribe/internal/observability"
	"github.com/hgrant/datascribe/internal/schema"
)

// State keys shared by the graph nodes.
const (
	keyQuestion  = "question"
	keyInputType = "input_type"
	keyPlan      = "plan"
	keyResults   = "db_results"
	keyResponse  = "response"
	keyContext   = "context"
	keyGraph     = "db_graph"
)

// Discoverer produces a schema graph for the connected database.
type Discoverer interface {
	Discover(ctx context.Context, forceRefresh bool) (*schema.Graph, error)
}

// GraphSink receives a discovered schema graph. The database agent
// implements this to enrich its queries with join paths.
type GraphSink interface {
	UseGraph(g *schema.Graph)
}

type runnable interface {
	Invoke(ctx context.Context, state map[string]any) (map[string]any, error)
}

// Supervisor wires the classifier, planner, dispatcher and composer
// into a single graph and runs questions through it.
type Supervisor struct {
	Classifier *agent.Classifier
	Planner    *agent.Planner
	Dispatcher *agent.Dispatcher
	Composer   *agent.Composer
	Discovery  Discoverer
	DB         GraphSink
	Log        *observability.Logger

	workflow runnable
}

func New(
	classifier *agent.Classifier,
	planner *agent.Planner,
	dispatcher *agent.Dispatcher,
	composer *agent.Composer,
	discovery Discoverer,
	db GraphSink,
	logger *observability.Logger,
) (*Supervisor, error) {
	s := &Supervisor{
		Classifier: classifier,
		Planner:    planner,
		Dispatcher: dispatcher,
		Composer:   composer,
		Discovery:  discovery,
		DB:         db,
		Log:        logger,
	}

	workflow, err := s.build()
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow: %w", err)
	}
	s.workflow = workflow
	return s, nil
}

func (s *Supervisor) build() (runnable, error) {
	g := graph.NewStateGraph[map[string]any]()

	g.AddNode("classify_input", "Route the question by input type", s.classifyInput)
	g.AddNode("discover_database", "Discover the schema graph", s.discoverDatabase)
	g.AddNode("create_plan", "Turn the question into typed steps", s.createPlan)
	g.AddNode("execute_plan", "Dispatch every step", s.executePlan)
	g.AddNode("generate_response", "Compose the final answer", s.generateResponse)

	g.SetEntryPoint("classify_input")
	g.AddConditionalEdge("classify_input", func(ctx context.Context, state map[string]any) string {
		if inputType(state).RequiresDatabase() {
			return "discover_database"
		}
		return "generate_response"
	})
	g.AddEdge("discover_database", "create_plan")
	g.AddEdge("create_plan", "execute_plan")
	g.AddEdge("execute_plan", "generate_response")
	g.AddEdge("generate_response", graph.END)

	return g.Compile()
}

// Answer runs one question through the workflow and returns the final
// response together with the updated conversation context.
func (s *Supervisor) Answer(ctx context.Context, question string, conv agent.Context) (string, agent.Context, error) {
	state := map[string]any{
		keyQuestion: question,
		keyContext:  conv,
	}

	out, err := s.workflow.Invoke(ctx, state)
	if err != nil {
		return "", conv, fmt.Errorf("workflow failed: %w", err)
	}

	answer, _ := out[keyResponse].(string)
	return answer, contextFrom(out), nil
}

func (s *Supervisor) classifyInput(ctx context.Context, state map[string]any) (map[string]any, error) {
	question, _ := state[keyQuestion].(string)
	kind := s.Classifier.Classify(ctx, question)
	log.Printf("[supervisor] input classified as %s", kind)
	return next(state, keyInputType, kind), nil
}

func (s *Supervisor) discoverDatabase(ctx context.Context, state map[string]any) (map[string]any, error) {
	if s.Discovery == nil {
		return state, nil
	}
	if _, ok := state[keyGraph].(*schema.Graph); ok {
		return state, nil
	}

	g, err := s.Discovery.Discover(ctx, false)
	if err != nil {
		// Discovery is an enrichment step; queries still work without it.
		log.Printf("[supervisor] schema discovery failed: %v", err)
		return state, nil
	}
	if s.DB != nil {
		s.DB.UseGraph(g)
	}
	if s.Log != nil {
		tables := len(g.TableNodes())
		s.Log.LogDiscovery(tables, g.NodeCount()-tables, false)
	}
	return next(state, keyGraph, g), nil
}

func (s *Supervisor) createPlan(ctx context.Context, state map[string]any) (map[string]any, error) {
	question, _ := state[keyQuestion].(string)
	plan := s.Planner.CreatePlan(ctx, question, contextFrom(state))

	if s.Log != nil {
		steps := make([]string, len(plan))
		for i, step := range plan {
			steps[i] = step.String()
		}
		s.Log.LogPlan(question, steps)
	}
	return next(state, keyPlan, plan), nil
}

func (s *Supervisor) executePlan(ctx context.Context, state map[string]any) (map[string]any, error) {
	plan, _ := state[keyPlan].(agent.Plan)
	results := s.Dispatcher.Execute(ctx, plan)

	if s.Log != nil {
		for _, res := range results {
			switch res.Step.Kind {
			case agent.KindDatabase, agent.KindInference:
				s.Log.LogQuery(res.Step.Content, res.Output, res.Err)
			case agent.KindResearch:
				s.Log.LogResearch(res.Step.Content, res.Output)
			}
			s.Log.LogStep(res.Step.String(), res.Output, res.Err)
		}
	}
	return next(state, keyResults, results), nil
}

func (s *Supervisor) generateResponse(ctx context.Context, state map[string]any) (map[string]any, error) {
	question, _ := state[keyQuestion].(string)
	conv := contextFrom(state)

	var answer string
	var updated agent.Context
	if inputType(state).RequiresDatabase() {
		results, _ := state[keyResults].([]agent.StepResult)
		answer, updated = s.Composer.Compose(ctx, question, results, conv)
	} else {
		answer, updated = s.Composer.Chat(ctx, question, conv)
	}

	if s.Log != nil {
		s.Log.LogCompose(question, answer)
	}

	out := next(state, keyResponse, answer)
	out[keyContext] = agent.Merge(conv, updated)
	out[keyPlan] = agent.Plan(nil)
	out[keyResults] = []agent.StepResult(nil)
	return out, nil
}

// next copies the state and sets one key, so nodes never mutate the
// map they were handed.
func next(state map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(state)+1)
	for k, v := range state {
		out[k] = v
	}
	out[key] = value
	return out
}

func contextFrom(state map[string]any) agent.Context {
	conv, _ := state[keyContext].(agent.Context)
	return conv
}

func inputType(state map[string]any) agent.InputType {
	kind, ok := state[keyInputType].(agent.InputType)
	if !ok {
		return agent.InputDatabaseQuery
	}
	return kind
}
