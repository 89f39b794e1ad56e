package agent

import "strings"

// StepKind identifies which handler a plan step is dispatched to.
type StepKind string

const (
	KindDatabase  StepKind = "Database"
	KindInference StepKind = "Inference"
	KindResearch  StepKind = "Research"
	KindGeneral   StepKind = "General"
)

// Step is one typed instruction within a plan.
type Step struct {
	Kind    StepKind
	Content string
}

func (s Step) String() string {
	return string(s.Kind) + ": " + s.Content
}

// Plan is an ordered sequence of steps; insertion order is execution order.
type Plan []Step

// ParseKind maps a tag to its StepKind. The vocabulary is closed: anything
// outside the four known tags reports ok=false.
func ParseKind(tag string) (StepKind, bool) {
	for _, k := range []StepKind{KindDatabase, KindInference, KindResearch, KindGeneral} {
		if strings.EqualFold(tag, string(k)) {
			return k, true
		}
	}
	return "", false
}

// ParsePlan extracts typed steps from raw planner output. Blank lines, a
// literal "plan:" header and any line without a recognized
// "<Kind>: <non-empty content>" prefix are discarded. Source order is
// preserved; no reordering by kind.
func ParsePlan(text string) Plan {
	var plan Plan
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "plan:") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		kind, ok := ParseKind(strings.TrimSpace(parts[0]))
		if !ok {
			continue
		}
		content := strings.TrimSpace(parts[1])
		if content == "" {
			continue
		}
		plan = append(plan, Step{Kind: kind, Content: content})
	}
	return plan
}
