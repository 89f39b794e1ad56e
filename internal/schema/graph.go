package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Node is one vertex in the schema graph: either a table or a column.
// Table nodes are numbered first; column nodes are numbered after all table
// ids so the two ranges never collide.
type Node struct {
	ID       int
	Table    string // table name; empty for column nodes
	Column   string // column name; empty for table nodes
	Type     string
	Optional bool
}

func (n Node) IsTable() bool {
	return n.Table != ""
}

// Label renders the node for relationship paths.
func (n Node) Label() string {
	if n.IsTable() {
		return "Table: " + n.Table
	}
	return "Column: " + n.Column
}

// Graph is an undirected graph of table and column nodes. Edges connect a
// table to each of its columns and a foreign-key column to the column it
// references.
type Graph struct {
	Nodes map[int]Node
	Adj   map[int][]int
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[int]Node),
		Adj:   make(map[int][]int),
	}
}

func (g *Graph) AddNode(n Node) {
	g.Nodes[n.ID] = n
}

// AddEdge connects two nodes in both directions. Duplicate edges are
// ignored.
func (g *Graph) AddEdge(a, b int) {
	for _, n := range g.Adj[a] {
		if n == b {
			return
		}
	}
	g.Adj[a] = append(g.Adj[a], b)
	g.Adj[b] = append(g.Adj[b], a)
}

func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

func (g *Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g.Adj {
		total += len(neighbors)
	}
	return total / 2
}

// TableNodes returns all table nodes in id order.
func (g *Graph) TableNodes() []Node {
	var tables []Node
	for _, n := range g.Nodes {
		if n.IsTable() {
			tables = append(tables, n)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables
}

// ParseError reports that a discovery response could not be decoded into a
// schema graph. It is fatal for the discovery call: no partial graph is
// produced.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed schema JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Discovery JSON shape, as requested from the model.
type tableJSON struct {
	TableName string       `json:"tableName"`
	Columns   []columnJSON `json:"columns"`
}

type columnJSON struct {
	ColumnName          string  `json:"columnName"`
	ColumnType          string  `json:"columnType"`
	IsOptional          bool    `json:"isOptional"`
	ForeignKeyReference *fkJSON `json:"foreignKeyReference"`
}

type fkJSON struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

const snippetLimit = 200

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}

// extractJSON slices the JSON array out of a model response that may wrap
// it in markdown fences or commentary.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON array found")
	}
	return raw[start : end+1], nil
}

// BuildGraph parses a schema discovery response into a graph: one node per
// table, one node per column, edges for table-owns-column and for each
// foreign key an edge between the two referenced column nodes. Malformed
// input yields a *ParseError and no partial graph.
func BuildGraph(raw string) (*Graph, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Snippet: snippet(raw), Err: err}
	}

	var tables []tableJSON
	if err := json.Unmarshal([]byte(body), &tables); err != nil {
		return nil, &ParseError{Snippet: snippet(body), Err: err}
	}

	g := NewGraph()
	tableID := 0
	columnID := len(tables) + 1
	columnIDs := make(map[string]int) // "table.column" -> node id

	for _, table := range tables {
		tableID++
		g.AddNode(Node{ID: tableID, Table: table.TableName})

		for _, column := range table.Columns {
			columnID++
			g.AddNode(Node{
				ID:       columnID,
				Column:   column.ColumnName,
				Type:     column.ColumnType,
				Optional: column.IsOptional,
			})
			columnIDs[table.TableName+"."+column.ColumnName] = columnID
			g.AddEdge(tableID, columnID)
		}
	}

	for _, table := range tables {
		for _, column := range table.Columns {
			fk := column.ForeignKeyReference
			if fk == nil {
				continue
			}
			from, okFrom := columnIDs[table.TableName+"."+column.ColumnName]
			to, okTo := columnIDs[fk.Table+"."+fk.Column]
			if !okFrom || !okTo {
				// Reference to a column the model never described;
				// skip rather than fabricate a node.
				continue
			}
			g.AddEdge(from, to)
		}
	}

	return g, nil
}
