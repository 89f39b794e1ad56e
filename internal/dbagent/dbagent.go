// Package dbagent answers natural-language questions against a SQL
// database by delegating SQL generation to a language model chain.
package dbagent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools/sqldatabase"
	_ "github.com/tmc/langchaingo/tools/sqldatabase/sqlite3"

	"github.com/hgrant/datascribe/internal/governance"
	"github.com/hgrant/datascribe/internal/schema"
)

// topK limits how many rows the chain asks the model to consider.
const topK = 5

// DBAgent wraps a SQL database and a model-backed chain that translates
// questions into queries. Raw statements pass through the policy engine
// before execution.
type DBAgent struct {
	db     *sqldatabase.SQLDatabase
	chain  chains.Chain
	policy governance.PolicyEngine
	graph  *schema.Graph
}

// New opens the database at dsn and builds the query chain on top of it.
func New(model llms.Model, dsn string, policy governance.PolicyEngine) (*DBAgent, error) {
	db, err := sqldatabase.NewSQLDatabaseWithDSN("sqlite3", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	agent := &DBAgent{
		db:     db,
		chain:  chains.NewSQLDatabaseChain(model, topK, db),
		policy: policy,
	}

	if err := agent.testConnection(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return agent, nil
}

func (a *DBAgent) testConnection(ctx context.Context) error {
	out, err := a.db.Query(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	log.Printf("[dbagent] connected, tables: %s", strings.TrimSpace(out))
	return nil
}

// UseGraph attaches a schema graph used to enrich questions with
// relevant tables and join paths before the chain sees them.
func (a *DBAgent) UseGraph(g *schema.Graph) {
	a.graph = g
}

// ShowTables lists the tables the database exposes.
func (a *DBAgent) ShowTables() []string {
	return a.db.TableNames()
}

// SchemaInfo returns the CREATE statements and sample rows for every
// table, as reported by the underlying engine.
func (a *DBAgent) SchemaInfo(ctx context.Context) (string, error) {
	info, err := a.db.TableInfo(ctx, a.db.TableNames())
	if err != nil {
		return "", fmt.Errorf("failed to read table info: %w", err)
	}
	return info, nil
}

// Run executes a raw SQL statement after the policy engine approves it.
func (a *DBAgent) Run(ctx context.Context, statement string) (string, error) {
	res, err := a.policy.Evaluate(ctx, governance.Request{Statement: statement})
	if err != nil {
		return "", fmt.Errorf("policy evaluation failed: %w", err)
	}
	if res.Effect == governance.EffectDeny {
		return "", fmt.Errorf("statement denied: %s", res.Reason)
	}

	out, err := a.db.Query(ctx, statement)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

// Query answers a natural-language question. When a schema graph is
// attached, the question is prefixed with the tables and relationship
// paths that look relevant, which keeps the generated SQL on the right
// joins.
func (a *DBAgent) Query(ctx context.Context, question string) (string, error) {
	input := question
	if a.graph != nil {
		analysis := schema.FindRelevant(a.graph, question)
		if len(analysis.Tables) > 0 {
			input = fmt.Sprintf(
				"Relevant tables: %s\nRelationships: %s\n\nQuestion: %s",
				strings.Join(analysis.TableNames(), ", "),
				analysis.PathText(),
				question,
			)
		}
	}

	out, err := chains.Run(ctx, a.chain, input)
	if err != nil {
		return "", fmt.Errorf("database query failed: %w", err)
	}
	return out, nil
}

// Close releases the database connection.
func (a *DBAgent) Close() error {
	return a.db.Close()
}
