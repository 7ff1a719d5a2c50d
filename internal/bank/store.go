package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"quizez/internal/config"
	"quizez/pkg/quiz"
	"quizez/pkg/wire"
)

// Store is a local question bank. Hosts author questions ahead of class and
// pull them back out when a session runs. Questions are stored in their wire
// encoding so anything the bank accepts can be sent to a server verbatim.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens the bank at cfg.Path, creating the file and schema on first use.
func Open(cfg *config.BankConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}

	// A single connection sidesteps SQLite write contention for a tool
	// that is never under concurrent load.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bank schema: %w", err)
	}

	return &Store{db: db, timeout: cfg.Timeout}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save validates and stores a question, returning its bank id. Invalid
// questions are rejected so the bank never holds anything a server would
// refuse.
func (s *Store) Save(ctx context.Context, q quiz.Question) (int64, error) {
	if violations := q.Validate(); len(violations) > 0 {
		return 0, fmt.Errorf("question failed validation: %v", violations)
	}

	data, err := json.Marshal(wire.EncodeQuestion(q))
	if err != nil {
		return 0, fmt.Errorf("failed to encode question: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `INSERT INTO questions (payload) VALUES (?)`, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to save question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read question id: %w", err)
	}
	return id, nil
}

// Get retrieves one question by bank id.
func (s *Store) Get(ctx context.Context, id int64) (quiz.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM questions WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return quiz.Question{}, fmt.Errorf("question %d not found", id)
	}
	if err != nil {
		return quiz.Question{}, fmt.Errorf("failed to load question %d: %w", id, err)
	}
	return decodeStored(data)
}

// List returns every stored question in insertion order.
func (s *Store) List(ctx context.Context) ([]quiz.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var questions []quiz.Question
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		q, err := decodeStored(data)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}

// Delete removes a question by bank id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm deletion of question %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("question %d not found", id)
	}
	return nil
}

func decodeStored(data string) (quiz.Question, error) {
	var p wire.Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return quiz.Question{}, fmt.Errorf("corrupt question payload: %w", err)
	}
	q, err := wire.DecodeQuestion(p)
	if err != nil {
		return quiz.Question{}, fmt.Errorf("corrupt question payload: %w", err)
	}
	return q, nil
}
