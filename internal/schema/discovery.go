package schema

import (
	"context"
	"fmt"
	"log"
)

// Completer is the text-completion collaborator used for discovery; it
// mirrors the agent package's interface so the same client serves both.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SchemaInfoProvider supplies live table DDL included in the discovery
// prompt so the model describes the actual database.
type SchemaInfoProvider interface {
	SchemaInfo(ctx context.Context) (string, error)
}

const discoverySystemPrompt = `You are an AI assistant describing the schema of a SQL database.
Your responses should be formatted as json only.
Always strive for clarity, terseness and conciseness in your responses.
Return a json array with all the tables, using the example below:

Example output:
[
    {
        "tableName": "<NAME OF TABLE>",
        "columns": [
            {
                "columnName": "<COLUMN NAME>",
                "columnType": "<COLUMN TYPE>",
                "isOptional": true,
                "foreignKeyReference": {
                    "table": "<REFERENCE TABLE NAME>",
                    "column": "<REFERENCE COLUMN NAME>"
                }
            }
        ]
    }
]

Columns without a foreign key must set "foreignKeyReference" to null.

## mandatory
only output json
do not put any extra commentary`

const discoveryQuestion = "For all tables in this database, show the table name, column name, column type, if its optional. Also show Foreign key references to other columns. Do not show examples. Output only as json."

// DiscoveryAgent asks the model to describe the database schema as JSON and
// maintains the cached graph.
type DiscoveryAgent struct {
	LLM   Completer
	Info  SchemaInfoProvider
	Cache *Cache
}

func NewDiscoveryAgent(llm Completer, info SchemaInfoProvider, cachePath string) *DiscoveryAgent {
	return &DiscoveryAgent{
		LLM:   llm,
		Info:  info,
		Cache: &Cache{Path: cachePath},
	}
}

// Discover returns the schema graph, served from cache unless forceRefresh
// is set. A malformed discovery response is fatal for the call: the caller
// retries or surfaces the *ParseError; no partial graph is cached.
func (d *DiscoveryAgent) Discover(ctx context.Context, forceRefresh bool) (*Graph, error) {
	if !forceRefresh {
		g, err := d.Cache.Load()
		if err != nil {
			log.Printf("discovery: ignoring unreadable graph cache: %v", err)
		} else if g != nil {
			return g, nil
		}
	}

	log.Printf("discovery: no cached graph, performing discovery")

	user := discoveryQuestion
	if d.Info != nil {
		info, err := d.Info.SchemaInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema info: %w", err)
		}
		user = fmt.Sprintf("%s\n\nSchema:\n%s", discoveryQuestion, info)
	}

	out, err := d.LLM.Complete(ctx, discoverySystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("schema discovery failed: %w", err)
	}

	g, err := BuildGraph(out)
	if err != nil {
		return nil, err
	}

	if err := d.Cache.Save(g); err != nil {
		log.Printf("discovery: failed to persist graph cache: %v", err)
	}
	return g, nil
}
