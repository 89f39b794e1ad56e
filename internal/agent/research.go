package agent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

// Topic is one entry in the research knowledge base.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Advice   string   `yaml:"advice"`
}

const noResearchMessage = "I found no specific information about this topic in my knowledge base."

// ResearchAgent answers Research steps from a fixed knowledge base. A query
// matches a topic when any of the topic's keywords appears in it,
// case-insensitively. The agent never fails: unmatched queries produce a
// canned not-found response.
type ResearchAgent struct {
	topics []Topic
}

// NewResearchAgent loads the embedded default knowledge base.
func NewResearchAgent() (*ResearchAgent, error) {
	return NewResearchAgentFromYAML(defaultKnowledge)
}

// NewResearchAgentFromYAML builds an agent from a YAML list of topics, so
// the keyword dictionary is an explicit input rather than an inline
// heuristic.
func NewResearchAgentFromYAML(data []byte) (*ResearchAgent, error) {
	var topics []Topic
	if err := yaml.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %v", err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("knowledge base is empty")
	}
	return &ResearchAgent{topics: topics}, nil
}

// Research returns the advice of every topic matching the query, in
// knowledge-base order, joined under a findings banner.
func (r *ResearchAgent) Research(query string) string {
	q := strings.ToLower(query)

	var parts []string
	for _, t := range r.topics {
		for _, kw := range t.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				parts = append(parts, t.Advice)
				break
			}
		}
	}
	if len(parts) == 0 {
		parts = append(parts, noResearchMessage)
	}

	lines := append([]string{"Research Findings:", "-------------------"}, parts...)
	lines = append(lines, "-------------------")
	return strings.Join(lines, "\n")
}
