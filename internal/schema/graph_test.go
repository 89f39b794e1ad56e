package schema

import (
	"errors"
	"strings"
	"testing"
)

// sampleSchema is a two-table slice of the Chinook-style catalog: albums
// reference artists through ArtistId.
const sampleSchema = `[
  {
    "tableName": "artists",
    "columns": [
      {"columnName": "ArtistId", "columnType": "INTEGER", "isOptional": false, "foreignKeyReference": null},
      {"columnName": "Name", "columnType": "NVARCHAR(120)", "isOptional": true, "foreignKeyReference": null}
    ]
  },
  {
    "tableName": "albums",
    "columns": [
      {"columnName": "AlbumId", "columnType": "INTEGER", "isOptional": false, "foreignKeyReference": null},
      {"columnName": "Title", "columnType": "NVARCHAR(160)", "isOptional": false, "foreignKeyReference": null},
      {"columnName": "ArtistId", "columnType": "INTEGER", "isOptional": false, "foreignKeyReference": {"table": "artists", "column": "ArtistId"}}
    ]
  }
]`

func buildSample(t *testing.T) *Graph {
	t.Helper()
	g, err := BuildGraph(sampleSchema)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuildGraphCounts(t *testing.T) {
	g := buildSample(t)

	// 2 table nodes + 5 column nodes.
	if g.NodeCount() != 7 {
		t.Errorf("Expected 7 nodes, got %d", g.NodeCount())
	}
	// 5 table-owns-column edges + 1 foreign-key edge.
	if g.EdgeCount() != 6 {
		t.Errorf("Expected 6 edges, got %d", g.EdgeCount())
	}

	tables := g.TableNodes()
	if len(tables) != 2 || tables[0].Table != "artists" || tables[1].Table != "albums" {
		t.Errorf("Unexpected table nodes: %+v", tables)
	}
}

func TestBuildGraphColumnAttributes(t *testing.T) {
	g := buildSample(t)

	var name Node
	for _, n := range g.Nodes {
		if n.Column == "Name" {
			name = n
		}
	}
	if name.ID == 0 {
		t.Fatal("Name column node not found")
	}
	if name.Type != "NVARCHAR(120)" || !name.Optional {
		t.Errorf("Unexpected column attributes: %+v", name)
	}
	// Column ids are numbered after all table ids.
	if name.ID <= 2 {
		t.Errorf("Column id %d collides with table id range", name.ID)
	}
}

func TestBuildGraphStripsMarkdownFences(t *testing.T) {
	fenced := "Here is the schema:\n```json\n" + sampleSchema + "\n```\n"

	g, err := BuildGraph(fenced)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 7 {
		t.Errorf("Expected 7 nodes from fenced input, got %d", g.NodeCount())
	}
}

func TestBuildGraphMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "[{\"tableName\": }]"} {
		_, err := BuildGraph(raw)
		if err == nil {
			t.Errorf("Expected parse error for %q", raw)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Expected *ParseError for %q, got %T", raw, err)
		}
	}
}

func TestBuildGraphSkipsDanglingForeignKey(t *testing.T) {
	raw := `[
  {
    "tableName": "tracks",
    "columns": [
      {"columnName": "GenreId", "columnType": "INTEGER", "isOptional": true, "foreignKeyReference": {"table": "genres", "column": "GenreId"}}
    ]
  }
]`
	g, err := BuildGraph(raw)
	if err != nil {
		t.Fatal(err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected only the owns-column edge, got %d edges", g.EdgeCount())
	}
}

func TestFindRelevantSingleTable(t *testing.T) {
	g := buildSample(t)

	analysis := FindRelevant(g, "How many albums are in the albums table?")

	if len(analysis.Tables) != 1 || analysis.Tables[0].Name != "albums" {
		t.Fatalf("Expected single albums match, got %+v", analysis.Tables)
	}
	if len(analysis.Paths) != 0 {
		t.Errorf("Single-table match must have zero relationship paths, got %v", analysis.Paths)
	}
}

func TestFindRelevantSingularVariant(t *testing.T) {
	g := buildSample(t)

	analysis := FindRelevant(g, "Which artist recorded the most tracks?")

	if len(analysis.Tables) != 1 || analysis.Tables[0].Name != "artists" {
		t.Fatalf("Expected artists matched via singular form, got %+v", analysis.Tables)
	}
}

func TestFindRelevantRelationshipPath(t *testing.T) {
	g := buildSample(t)

	analysis := FindRelevant(g, "List all albums together with their artists")

	if len(analysis.Tables) != 2 {
		t.Fatalf("Expected both tables matched, got %+v", analysis.Tables)
	}
	if len(analysis.Paths) != 1 {
		t.Fatalf("Expected one relationship path, got %v", analysis.Paths)
	}
	path := analysis.Paths[0]
	if path[0] != "Table: artists" || path[len(path)-1] != "Table: albums" {
		t.Errorf("Path must connect the two tables: %v", path)
	}
	joined := strings.Join(path, " -> ")
	if !strings.Contains(joined, "Column: ArtistId") {
		t.Errorf("Path should pass through the foreign-key columns: %s", joined)
	}
}

func TestFindRelevantColumns(t *testing.T) {
	g := buildSample(t)

	analysis := FindRelevant(g, "Show the title of every album")

	if len(analysis.Tables) != 1 {
		t.Fatalf("Expected albums matched, got %+v", analysis.Tables)
	}
	cols := analysis.Tables[0].Columns
	if len(cols) != 1 || cols[0].Name != "Title" || cols[0].Table != "albums" {
		t.Errorf("Expected Title column match, got %+v", cols)
	}
}

func TestFindRelevantDeterministic(t *testing.T) {
	g := buildSample(t)
	question := "List all albums together with their artists"

	first := FindRelevant(g, question)
	for i := 0; i < 5; i++ {
		again := FindRelevant(g, question)
		if first.PathText() != again.PathText() {
			t.Fatalf("FindRelevant not deterministic: %q vs %q", first.PathText(), again.PathText())
		}
	}
}
