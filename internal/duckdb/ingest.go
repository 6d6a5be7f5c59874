package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
)

// Open opens (creating if needed) a DuckDB database file and applies the schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// IngestStats counts what one ingest added.
type IngestStats struct {
	Tests     int
	Questions int
	Skipped   int
}

// Ingest stores every question of results. Questions are keyed by test name,
// position and content, so repeated questions within a test are all kept and
// ingesting the same file twice adds nothing.
func Ingest(ctx context.Context, db *sql.DB, results *aggregate.Results, source string) (IngestStats, error) {
	if db == nil {
		return IngestStats{}, errors.New("duckdb: db is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return IngestStats{}, fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stats IngestStats
	for _, entry := range results.Entries() {
		testID := TestID(entry.Name).String()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tests (test_id, name, created_at) VALUES (?, ?, now())
			 ON CONFLICT DO NOTHING`,
			testID, entry.Name)
		if err != nil {
			return IngestStats{}, fmt.Errorf("insert test %q: %w", entry.Name, err)
		}
		stats.Tests += affected(res)
		for position, q := range entry.Questions {
			inserted, err := insertQuestion(ctx, tx, testID, entry.Name, position, q, source)
			if err != nil {
				return IngestStats{}, fmt.Errorf("test %q question %d: %w", entry.Name, position+1, err)
			}
			if inserted {
				stats.Questions++
			} else {
				stats.Skipped++
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return IngestStats{}, fmt.Errorf("commit ingest: %w", err)
	}
	return stats, nil
}

func insertQuestion(ctx context.Context, tx *sql.Tx, testID, testName string, position int, q question.Question, source string) (bool, error) {
	canonical, err := CanonicalJSON(q)
	if err != nil {
		return false, err
	}
	key := fingerprintBytes(append([]byte(fmt.Sprintf("%s\x00%d\x00", testName, position)), canonical...))
	questionID := QuestionID(key).String()

	var (
		kind    question.Kind
		single  bool
		value   interface{}
		correct interface{}
	)
	switch answer := q.Answer.(type) {
	case question.TextAnswer:
		kind, value, correct = question.KindText, answer.Value, correctnessArg(answer.Correct)
	case question.ChoiceList:
		kind, single = question.KindChoice, answer.Single
	case question.MatchingList:
		kind = question.KindMatching
	default:
		return false, fmt.Errorf("%w: %T", question.ErrUnknownKind, q.Answer)
	}

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE question_key = ?`, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup question: %w", err)
	}
	if exists > 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO questions (question_id, test_id, question_key, ordinal, text, kind, single, value, correct, spec, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now())`,
		questionID, testID, key, position, q.Text, string(kind), single, value, correct, string(canonical), nullableString(source),
	); err != nil {
		return false, fmt.Errorf("insert question: %w", err)
	}

	switch answer := q.Answer.(type) {
	case question.ChoiceList:
		for i, option := range answer.Options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO options (question_id, ordinal, text, correct) VALUES (?, ?, ?, ?)`,
				questionID, i, option.Text, correctnessArg(option.Correct),
			); err != nil {
				return false, fmt.Errorf("insert option %d: %w", i+1, err)
			}
		}
	case question.MatchingList:
		for i, pair := range answer.Pairs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO pairs (question_id, ordinal, left_label, right_value, correct) VALUES (?, ?, ?, ?, ?)`,
				questionID, i, pair.Left, pair.Right, pair.Correct,
			); err != nil {
				return false, fmt.Errorf("insert pair %d: %w", i+1, err)
			}
		}
	}
	return true, nil
}

// correctnessArg maps unknown to SQL NULL.
func correctnessArg(c question.Correctness) interface{} {
	value, ok := c.Bool()
	if !ok {
		return nil
	}
	return value
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
