package exam

import (
	"errors"
	"time"

	"github.com/aeroclass/backend/internal/domain/question"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
)

var (
	// ErrAlreadyPassed means the submission is terminal: the user passed.
	ErrAlreadyPassed = errors.New("test already passed")
	// ErrRetryNotAvailable means the retry cool-down has not elapsed.
	ErrRetryNotAvailable = errors.New("retry delay has not elapsed")
)

// Attempt is one graded try within a submission's history.
type Attempt struct {
	Timestamp    time.Time          `json:"timestamp"`
	ScorePercent float64            `json:"score_percent"`
	Passed       bool               `json:"passed"`
	Answers      question.AnswerSet `json:"answers"`
}

// Submission is the persisted record of one user's attempts at one test.
// The attempts list is append-only and chronological.
type Submission struct {
	UserID       string             `json:"user_id"`
	TestID       string             `json:"test_id"`
	Answers      question.AnswerSet `json:"answers"` // most recent answer map
	Attempts     []Attempt          `json:"attempts"`
	Passed       *bool              `json:"passed"` // nil = not yet attempted / pending manual review
	ReviewedOnce bool               `json:"reviewed_once"`
	Status       Status             `json:"status"`
}

// NewSubmission creates the submission record for a (user, test) pair.
// It is created on first answer submission and never deleted by the core.
func NewSubmission(userID, testID string) *Submission {
	return &Submission{
		UserID:  userID,
		TestID:  testID,
		Answers: question.AnswerSet{},
		Status:  StatusInProgress,
	}
}

// LastAttempt returns the most recent attempt, or nil before the first.
func (s *Submission) LastAttempt() *Attempt {
	if len(s.Attempts) == 0 {
		return nil
	}
	return &s.Attempts[len(s.Attempts)-1]
}

// ScorePercent is the score of the most recent attempt.
func (s *Submission) ScorePercent() float64 {
	if last := s.LastAttempt(); last != nil {
		return last.ScorePercent
	}
	return 0
}

// RetryAvailableAt is the instant the retry cool-down expires. The zero
// time means no attempt exists yet.
func (s *Submission) RetryAvailableAt(retryDelayDays int) time.Time {
	last := s.LastAttempt()
	if last == nil {
		return time.Time{}
	}
	return last.Timestamp.Add(time.Duration(retryDelayDays) * 24 * time.Hour)
}

// CanRetryNow reports whether a new attempt may be made at the given time.
// True when the user never failed (no attempt yet, or passed) or the
// cool-down has elapsed. The boundary is inclusive: at exactly
// lastAttempt + delay the retry opens.
func (s *Submission) CanRetryNow(now time.Time, retryDelayDays int) bool {
	if s.Passed == nil || *s.Passed {
		return true
	}
	return !now.Before(s.RetryAvailableAt(retryDelayDays))
}

// DaysUntilRetry is the whole days remaining until retry, rounded up and
// floored at zero.
func (s *Submission) DaysUntilRetry(now time.Time, retryDelayDays int) int {
	if s.CanRetryNow(now, retryDelayDays) {
		return 0
	}
	remaining := s.RetryAvailableAt(retryDelayDays).Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	if days < 0 {
		days = 0
	}
	return days
}

// AppendAttempt records a graded attempt. A passed submission is terminal;
// a failed one only accepts a new attempt once the cool-down has elapsed.
// The submission's verdict, answer map and status are updated from the
// attempt.
func (s *Submission) AppendAttempt(a Attempt, retryDelayDays int) error {
	if s.Passed != nil {
		if *s.Passed {
			return ErrAlreadyPassed
		}
		if !s.CanRetryNow(a.Timestamp, retryDelayDays) {
			return ErrRetryNotAvailable
		}
	}

	s.Attempts = append(s.Attempts, a)
	passed := a.Passed
	s.Passed = &passed
	s.Answers = a.Answers
	s.Status = StatusFinal
	return nil
}

// MarkReviewed sets the one-time-review flag. The transition is monotone:
// once true it never reverts.
func (s *Submission) MarkReviewed() {
	s.ReviewedOnce = true
}
