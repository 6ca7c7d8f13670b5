package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/trigger"
)

// ============================================================================
// Submissions
// ============================================================================

func (s *SQLiteStore) GetSubmission(ctx context.Context, userID, testID string) (*exam.Submission, error) {
	sub := exam.Submission{UserID: userID, TestID: testID}

	var answersJSON, status string
	var passed sql.NullBool
	var reviewedOnce bool

	err := s.db.QueryRowContext(ctx,
		"SELECT answers, passed, reviewed_once, status FROM submissions WHERE user_id = ? AND test_id = ?",
		userID, testID,
	).Scan(&answersJSON, &passed, &reviewedOnce, &status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(answersJSON), &sub.Answers); err != nil {
		return nil, err
	}
	if passed.Valid {
		p := passed.Bool
		sub.Passed = &p
	}
	sub.ReviewedOnce = reviewedOnce
	sub.Status = exam.Status(status)

	rows, err := s.db.QueryContext(ctx,
		"SELECT attempted_at, score_percent, passed, answers FROM attempts WHERE user_id = ? AND test_id = ? ORDER BY id",
		userID, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var attemptedAt, attemptAnswers string
		var a exam.Attempt
		if err := rows.Scan(&attemptedAt, &a.ScorePercent, &a.Passed, &attemptAnswers); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, attemptedAt)
		if err != nil {
			return nil, err
		}
		a.Timestamp = ts
		if err := json.Unmarshal([]byte(attemptAnswers), &a.Answers); err != nil {
			return nil, err
		}
		sub.Attempts = append(sub.Attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &sub, nil
}

// SaveSubmission writes the full submission state in one transaction so a
// save is atomic per (user, test) key: either the new attempt history and
// flags land together or nothing changes.
func (s *SQLiteStore) SaveSubmission(ctx context.Context, sub *exam.Submission) error {
	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var passed sql.NullBool
	if sub.Passed != nil {
		passed = sql.NullBool{Bool: *sub.Passed, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (user_id, test_id, answers, passed, reviewed_once, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, test_id) DO UPDATE SET
			answers = excluded.answers,
			passed = excluded.passed,
			reviewed_once = excluded.reviewed_once,
			status = excluded.status
	`, sub.UserID, sub.TestID, string(answersJSON), passed, sub.ReviewedOnce, string(sub.Status))
	if err != nil {
		return err
	}

	// Attempts are rewritten from the in-memory history. The history itself
	// is append-only, so this never loses an attempt that was ever saved.
	_, err = tx.ExecContext(ctx,
		"DELETE FROM attempts WHERE user_id = ? AND test_id = ?",
		sub.UserID, sub.TestID,
	)
	if err != nil {
		return err
	}

	for _, a := range sub.Attempts {
		attemptAnswers, err := json.Marshal(a.Answers)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attempts (user_id, test_id, attempted_at, score_percent, passed, answers) VALUES (?, ?, ?, ?, ?, ?)",
			sub.UserID, sub.TestID, a.Timestamp.UTC().Format(time.RFC3339Nano), a.ScorePercent, a.Passed, string(attemptAnswers),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListSubmissions returns all submissions of a user keyed by test id,
// attempt histories included.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, userID string) (map[string]*exam.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT test_id, answers, passed, reviewed_once, status FROM submissions WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := map[string]*exam.Submission{}
	for rows.Next() {
		sub := exam.Submission{UserID: userID}
		var answersJSON, status string
		var passed sql.NullBool
		if err := rows.Scan(&sub.TestID, &answersJSON, &passed, &sub.ReviewedOnce, &status); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &sub.Answers); err != nil {
			return nil, err
		}
		if passed.Valid {
			p := passed.Bool
			sub.Passed = &p
		}
		sub.Status = exam.Status(status)
		subs[sub.TestID] = &sub
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attemptRows, err := s.db.QueryContext(ctx,
		"SELECT test_id, attempted_at, score_percent, passed, answers FROM attempts WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer attemptRows.Close()

	for attemptRows.Next() {
		var testID, attemptedAt, attemptAnswers string
		var a exam.Attempt
		if err := attemptRows.Scan(&testID, &attemptedAt, &a.ScorePercent, &a.Passed, &attemptAnswers); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, attemptedAt)
		if err != nil {
			return nil, err
		}
		a.Timestamp = ts
		if err := json.Unmarshal([]byte(attemptAnswers), &a.Answers); err != nil {
			return nil, err
		}
		if sub, ok := subs[testID]; ok {
			sub.Attempts = append(sub.Attempts, a)
		}
	}
	return subs, attemptRows.Err()
}

// ============================================================================
// Flight statistics
// ============================================================================

// AddFlightStats accumulates stat deltas for a user, e.g. after a logged
// flight: {"flightHours": 1.5, "flights": 1}.
func (s *SQLiteStore) AddFlightStats(ctx context.Context, userID string, deltas map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for stat, delta := range deltas {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_stats (user_id, stat, value) VALUES (?, ?, ?)
			ON CONFLICT (user_id, stat) DO UPDATE SET value = value + excluded.value
		`, userID, stat, delta)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetStats returns the user's aggregated statistics as one snapshot. A user
// with no recorded stats gets an empty snapshot, not an error: triggers
// read missing stats as zero.
func (s *SQLiteStore) GetStats(ctx context.Context, userID string) (trigger.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT stat, value FROM user_stats WHERE user_id = ?", userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := trigger.Snapshot{}
	for rows.Next() {
		var stat string
		var value float64
		if err := rows.Scan(&stat, &value); err != nil {
			return nil, err
		}
		snapshot[stat] = value
	}
	return snapshot, rows.Err()
}
