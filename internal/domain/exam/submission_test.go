package exam_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
)

func failedAt(t *testing.T, ts time.Time) *exam.Submission {
	t.Helper()
	sub := exam.NewSubmission("u1", "t1")
	err := sub.AppendAttempt(exam.Attempt{
		Timestamp:    ts,
		ScorePercent: 40,
		Passed:       false,
		Answers:      question.AnswerSet{"q1": question.NewChoice("A")},
	}, 3)
	if err != nil {
		t.Fatalf("append failing attempt: %v", err)
	}
	return sub
}

func TestCanRetry_BeforeFirstAttempt(t *testing.T) {
	sub := exam.NewSubmission("u1", "t1")
	if !sub.CanRetryNow(time.Now(), 3) {
		t.Error("expected retry allowed before first attempt")
	}
	if sub.DaysUntilRetry(time.Now(), 3) != 0 {
		t.Error("expected zero days until retry before first attempt")
	}
}

func TestCanRetry_Boundary(t *testing.T) {
	attemptAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := failedAt(t, attemptAt)

	halfway := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	if sub.CanRetryNow(halfway, 3) {
		t.Error("expected retry blocked at T+2.5 days")
	}
	if got := sub.DaysUntilRetry(halfway, 3); got != 1 {
		t.Errorf("expected 1 day until retry, got %d", got)
	}

	boundary := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if !sub.CanRetryNow(boundary, 3) {
		t.Error("expected retry open at exactly T+3 days (boundary inclusive)")
	}
	if got := sub.DaysUntilRetry(boundary, 3); got != 0 {
		t.Errorf("expected 0 days until retry at boundary, got %d", got)
	}

	twoDays := attemptAt.Add(2 * 24 * time.Hour)
	if sub.CanRetryNow(twoDays, 3) {
		t.Error("expected retry blocked at T+2 days")
	}
}

func TestAppendAttempt_SetsVerdictAndStatus(t *testing.T) {
	sub := exam.NewSubmission("u1", "t1")

	answers := question.AnswerSet{"q1": question.NewChoice("B")}
	err := sub.AppendAttempt(exam.Attempt{
		Timestamp:    time.Now(),
		ScorePercent: 85,
		Passed:       true,
		Answers:      answers,
	}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.Passed == nil || !*sub.Passed {
		t.Error("expected passed verdict")
	}
	if sub.Status != exam.StatusFinal {
		t.Errorf("expected final status, got %q", sub.Status)
	}
	if sub.ScorePercent() != 85 {
		t.Errorf("expected score 85, got %v", sub.ScorePercent())
	}
	if len(sub.Attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(sub.Attempts))
	}
}

func TestAppendAttempt_PassedIsTerminal(t *testing.T) {
	sub := exam.NewSubmission("u1", "t1")
	ts := time.Now()
	if err := sub.AppendAttempt(exam.Attempt{Timestamp: ts, ScorePercent: 90, Passed: true}, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := sub.AppendAttempt(exam.Attempt{Timestamp: ts.Add(100 * 24 * time.Hour), ScorePercent: 10, Passed: false}, 3)
	if !errors.Is(err, exam.ErrAlreadyPassed) {
		t.Errorf("expected ErrAlreadyPassed, got %v", err)
	}
	if len(sub.Attempts) != 1 {
		t.Errorf("expected attempts untouched, got %d", len(sub.Attempts))
	}
}

func TestAppendAttempt_RetryDelayEnforced(t *testing.T) {
	attemptAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := failedAt(t, attemptAt)

	tooSoon := exam.Attempt{Timestamp: attemptAt.Add(24 * time.Hour), ScorePercent: 80, Passed: true}
	if err := sub.AppendAttempt(tooSoon, 3); !errors.Is(err, exam.ErrRetryNotAvailable) {
		t.Errorf("expected ErrRetryNotAvailable, got %v", err)
	}

	onTime := exam.Attempt{Timestamp: attemptAt.Add(3 * 24 * time.Hour), ScorePercent: 80, Passed: true}
	if err := sub.AppendAttempt(onTime, 3); err != nil {
		t.Fatalf("expected retry accepted at boundary, got %v", err)
	}

	if len(sub.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(sub.Attempts))
	}
	if sub.Passed == nil || !*sub.Passed {
		t.Error("expected updated verdict after retry")
	}
}

func TestMarkReviewed_Monotone(t *testing.T) {
	sub := failedAt(t, time.Now())

	if sub.ReviewedOnce {
		t.Fatal("expected reviewedOnce false initially")
	}
	sub.MarkReviewed()
	if !sub.ReviewedOnce {
		t.Fatal("expected reviewedOnce true after marking")
	}
	sub.MarkReviewed()
	if !sub.ReviewedOnce {
		t.Error("expected MarkReviewed to be idempotent")
	}
}

func TestRetryAvailableAt(t *testing.T) {
	sub := exam.NewSubmission("u1", "t1")
	if !sub.RetryAvailableAt(3).IsZero() {
		t.Error("expected zero retry time before first attempt")
	}

	attemptAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	failed := failedAt(t, attemptAt)
	want := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if got := failed.RetryAvailableAt(3); !got.Equal(want) {
		t.Errorf("expected retry at %v, got %v", want, got)
	}
}
