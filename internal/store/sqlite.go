// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/domain/trigger"
)

const schema = `
CREATE TABLE IF NOT EXISTS tests (
    id TEXT PRIMARY KEY,
    pass_threshold REAL NOT NULL,
    retry_delay_days INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS test_names (
    test_id TEXT NOT NULL,
    lang TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (test_id, lang),
    FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS test_triggers (
    test_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    stat TEXT NOT NULL,
    op TEXT NOT NULL,
    threshold REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (test_id, position),
    FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS content_packages (
    test_id TEXT PRIMARY KEY,
    disclaimer TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS content_questions (
    test_id TEXT NOT NULL,
    lang TEXT NOT NULL,
    questions TEXT NOT NULL,
    PRIMARY KEY (test_id, lang),
    FOREIGN KEY (test_id) REFERENCES content_packages(test_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS submissions (
    user_id TEXT NOT NULL,
    test_id TEXT NOT NULL,
    answers TEXT NOT NULL,
    passed INTEGER,
    reviewed_once INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    PRIMARY KEY (user_id, test_id)
);

CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    test_id TEXT NOT NULL,
    attempted_at TEXT NOT NULL,
    score_percent REAL NOT NULL,
    passed INTEGER NOT NULL,
    answers TEXT NOT NULL,
    FOREIGN KEY (user_id, test_id) REFERENCES submissions(user_id, test_id)
);

CREATE TABLE IF NOT EXISTS user_stats (
    user_id TEXT NOT NULL,
    stat TEXT NOT NULL,
    value REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, stat)
);
`

// SQLiteStore persists tests, content packages, submissions and flight
// statistics. It stands in for the remote backend the mobile app talks to:
// the core only requires that submissions round-trip losslessly and that
// saves are atomic per (user, test) key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Tests
// ============================================================================

func (s *SQLiteStore) SaveTest(ctx context.Context, t *exam.Test) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tests (id, pass_threshold, retry_delay_days) VALUES (?, ?, ?)",
		t.ID, t.PassThreshold, t.RetryDelayDays,
	)
	if err != nil {
		return err
	}

	for lang, name := range t.Names {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO test_names (test_id, lang, name) VALUES (?, ?, ?)",
			t.ID, lang, name,
		)
		if err != nil {
			return err
		}
	}

	for i, tr := range t.Triggers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO test_triggers (test_id, position, stat, op, threshold, description) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, i, tr.Stat, string(tr.Op), tr.Threshold, tr.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetTest(ctx context.Context, id string) (*exam.Test, error) {
	var t exam.Test
	err := s.db.QueryRowContext(ctx,
		"SELECT id, pass_threshold, retry_delay_days FROM tests WHERE id = ?", id,
	).Scan(&t.ID, &t.PassThreshold, &t.RetryDelayDays)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadTestDetails(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLiteStore) ListTests(ctx context.Context) ([]*exam.Test, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, pass_threshold, retry_delay_days FROM tests ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []*exam.Test
	for rows.Next() {
		var t exam.Test
		if err := rows.Scan(&t.ID, &t.PassThreshold, &t.RetryDelayDays); err != nil {
			return nil, err
		}
		tests = append(tests, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tests {
		if err := s.loadTestDetails(ctx, t); err != nil {
			return nil, err
		}
	}
	return tests, nil
}

func (s *SQLiteStore) loadTestDetails(ctx context.Context, t *exam.Test) error {
	t.Names = map[string]string{}
	nameRows, err := s.db.QueryContext(ctx,
		"SELECT lang, name FROM test_names WHERE test_id = ?", t.ID,
	)
	if err != nil {
		return err
	}
	defer nameRows.Close()
	for nameRows.Next() {
		var lang, name string
		if err := nameRows.Scan(&lang, &name); err != nil {
			return err
		}
		t.Names[lang] = name
	}
	if err := nameRows.Err(); err != nil {
		return err
	}

	trigRows, err := s.db.QueryContext(ctx,
		"SELECT stat, op, threshold, description FROM test_triggers WHERE test_id = ? ORDER BY position", t.ID,
	)
	if err != nil {
		return err
	}
	defer trigRows.Close()
	for trigRows.Next() {
		var tr trigger.Trigger
		var op string
		if err := trigRows.Scan(&tr.Stat, &op, &tr.Threshold, &tr.Description); err != nil {
			return err
		}
		tr.Op = trigger.Op(op)
		t.Triggers = append(t.Triggers, tr)
	}
	return trigRows.Err()
}

// ============================================================================
// Content
// ============================================================================

func (s *SQLiteStore) SaveContent(ctx context.Context, c *exam.Content) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replace any previous package wholesale, language rows included.
	if _, err := tx.ExecContext(ctx, "DELETE FROM content_questions WHERE test_id = ?", c.TestID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM content_packages WHERE test_id = ?", c.TestID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO content_packages (test_id, disclaimer) VALUES (?, ?)",
		c.TestID, c.Disclaimer,
	)
	if err != nil {
		return err
	}

	for lang, questions := range c.Languages {
		data, err := json.Marshal(questions)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO content_questions (test_id, lang, questions) VALUES (?, ?, ?)",
			c.TestID, lang, string(data),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadTestContent reads a content package. It satisfies content.Loader so
// the store can stand in for the remote content service.
func (s *SQLiteStore) LoadTestContent(ctx context.Context, testID string) (*exam.Content, error) {
	c := exam.Content{TestID: testID, Languages: map[string][]question.Question{}}

	err := s.db.QueryRowContext(ctx,
		"SELECT disclaimer FROM content_packages WHERE test_id = ?", testID,
	).Scan(&c.Disclaimer)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT lang, questions FROM content_questions WHERE test_id = ?", testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lang, data string
		if err := rows.Scan(&lang, &data); err != nil {
			return nil, err
		}
		var questions []question.Question
		if err := json.Unmarshal([]byte(data), &questions); err != nil {
			return nil, err
		}
		c.Languages[lang] = questions
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &c, nil
}
