package store

import (
	"database/sql"

	_ "github.com/glebarez/go-sqlite"

	"github.com/hgrant/datascribe/internal/agent"
)

// HistoryStore persists completed question/answer turns so a session
// can be resumed with its conversation context intact.
type HistoryStore struct {
	DB *sql.DB
}

func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	query := `CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT,
		response TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{DB: db}, nil
}

func (h *HistoryStore) SaveTurn(question string, response string) error {
	query := `INSERT INTO turns (question, response) VALUES (?, ?)`
	_, err := h.DB.Exec(query, question, response)
	return err
}

// LoadContext returns the most recent turns, oldest first, packaged as
// conversation context for the agent pipeline.
func (h *HistoryStore) LoadContext(limit int) (agent.Context, error) {
	query := `SELECT question, response FROM turns ORDER BY id DESC LIMIT ?`
	rows, err := h.DB.Query(query, limit)
	if err != nil {
		return agent.Context{}, err
	}
	defer rows.Close()

	var turns []agent.Turn
	for rows.Next() {
		var t agent.Turn
		if err := rows.Scan(&t.Question, &t.Response); err != nil {
			return agent.Context{}, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return agent.Context{}, err
	}

	// Reverse to get chronological order
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	conv := agent.Context{History: turns}
	if len(turns) > 0 {
		last := turns[len(turns)-1]
		conv.LastQuestion = last.Question
		conv.LastResponse = last.Response
	}
	return conv, nil
}

func (h *HistoryStore) Close() error {
	return h.DB.Close()
}
