package agent

import (
	"fmt"
	"strings"
)

// Turn is one completed question/response exchange.
type Turn struct {
	Question string
	Response string
}

// Context carries accumulated conversation state between turns. It is
// passed and returned by value, never mutated in place; history is
// append-only.
type Context struct {
	History      []Turn
	LastQuestion string
	LastResponse string
}

// Merge combines a prior context with a newer snapshot. When the snapshot
// extends the prior history, only the genuinely new suffix is appended, so
// replaying an identical snapshot never duplicates a turn. LastQuestion and
// LastResponse prefer the newer snapshot's value when present.
func Merge(old, update Context) Context {
	merged := Context{
		History:      append([]Turn(nil), old.History...),
		LastQuestion: old.LastQuestion,
		LastResponse: old.LastResponse,
	}
	incoming := update.History
	if n := len(merged.History); n > 0 && len(incoming) >= n && equalHistory(incoming[:n], merged.History) {
		incoming = incoming[n:]
	}
	for _, t := range incoming {
		if n := len(merged.History); n == 0 || merged.History[n-1] != t {
			merged.History = append(merged.History, t)
		}
	}
	if update.LastQuestion != "" {
		merged.LastQuestion = update.LastQuestion
	}
	if update.LastResponse != "" {
		merged.LastResponse = update.LastResponse
	}
	return merged
}

func equalHistory(a, b []Turn) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PromptText renders the history for inclusion in an instruction prompt.
func (c Context) PromptText() string {
	if len(c.History) == 0 {
		return "(no prior conversation)"
	}
	var b strings.Builder
	for _, t := range c.History {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", t.Question, t.Response)
	}
	return b.String()
}
