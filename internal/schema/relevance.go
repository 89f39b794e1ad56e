package schema

import (
	"sort"
	"strings"
)

// ColumnMatch is a column whose name appeared in the question.
type ColumnMatch struct {
	Name  string
	Type  string
	Table string
}

// TableMatch is a table whose name appeared in the question, with any of
// its columns that also appeared.
type TableMatch struct {
	Name    string
	Columns []ColumnMatch
}

// Analysis is the outcome of matching a question against the schema graph.
// Paths are label sequences connecting every pair of matched tables.
type Analysis struct {
	Tables []TableMatch
	Paths  [][]string
}

// TableNames lists the matched table names in graph order.
func (a Analysis) TableNames() []string {
	names := make([]string, 0, len(a.Tables))
	for _, t := range a.Tables {
		names = append(names, t.Name)
	}
	return names
}

// PathText renders the relationship paths for prompt inclusion.
func (a Analysis) PathText() string {
	if len(a.Paths) == 0 {
		return "(none)"
	}
	rendered := make([]string, 0, len(a.Paths))
	for _, p := range a.Paths {
		rendered = append(rendered, strings.Join(p, " -> "))
	}
	return strings.Join(rendered, "; ")
}

// nameAppears reports whether the name, its naive singular or its naive
// plural appears in the lowercased question.
func nameAppears(question, name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(question, name) || strings.Contains(question, name+"s") {
		return true
	}
	singular := strings.TrimRight(name, "s")
	return singular != "" && strings.Contains(question, singular)
}

// FindRelevant matches table names (with singular/plural variants) and, for
// matched tables, column names against the question text, then records the
// shortest path between every pair of matched tables. Pure and
// deterministic given the graph and the question.
func FindRelevant(g *Graph, question string) Analysis {
	q := strings.ToLower(question)
	var analysis Analysis
	var matchedIDs []int

	for _, table := range g.TableNodes() {
		if !nameAppears(q, strings.ToLower(table.Table)) {
			continue
		}

		match := TableMatch{Name: table.Table}
		for _, nb := range g.Adj[table.ID] {
			col := g.Nodes[nb]
			if col.IsTable() || col.Column == "" {
				continue
			}
			if strings.Contains(q, strings.ToLower(col.Column)) {
				match.Columns = append(match.Columns, ColumnMatch{
					Name:  col.Column,
					Type:  col.Type,
					Table: table.Table,
				})
			}
		}

		analysis.Tables = append(analysis.Tables, match)
		matchedIDs = append(matchedIDs, table.ID)
	}

	for i := 0; i < len(matchedIDs); i++ {
		for j := i + 1; j < len(matchedIDs); j++ {
			path := shortestPath(g, matchedIDs[i], matchedIDs[j])
			if path == nil {
				continue
			}
			labels := make([]string, 0, len(path))
			for _, id := range path {
				labels = append(labels, g.Nodes[id].Label())
			}
			analysis.Paths = append(analysis.Paths, labels)
		}
	}

	return analysis
}

// shortestPath runs a breadth-first search and returns the node ids from
// start to goal inclusive, or nil when no path exists.
func shortestPath(g *Graph, start, goal int) []int {
	if start == goal {
		return []int{start}
	}

	prev := map[int]int{start: start}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Stable expansion order keeps paths deterministic.
		neighbors := append([]int(nil), g.Adj[cur]...)
		sort.Ints(neighbors)

		for _, nb := range neighbors {
			if _, seen := prev[nb]; seen {
				continue
			}
			prev[nb] = cur
			if nb == goal {
				var path []int
				for at := goal; at != start; at = prev[at] {
					path = append(path, at)
				}
				path = append(path, start)
				for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
					path[l], path[r] = path[r], path[l]
				}
				return path
			}
			queue = append(queue, nb)
		}
	}
	return nil
}
