// internal/service/submissions.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aeroclass/backend/internal/content"
	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/domain/trigger"
	"github.com/aeroclass/backend/internal/grading"
	"github.com/aeroclass/backend/internal/store"
)

// ErrSubmissionInFlight means another submit for the same (user, test) pair
// has not finished yet. Duplicate taps must not interleave attempt appends.
var ErrSubmissionInFlight = errors.New("a submission for this test is already being processed")

// Store is the persistence the submission service needs. *store.SQLiteStore
// satisfies it; tests use a fake.
type Store interface {
	GetTest(ctx context.Context, id string) (*exam.Test, error)
	ListTests(ctx context.Context) ([]*exam.Test, error)
	GetSubmission(ctx context.Context, userID, testID string) (*exam.Submission, error)
	SaveSubmission(ctx context.Context, sub *exam.Submission) error
	ListSubmissions(ctx context.Context, userID string) (map[string]*exam.Submission, error)
	GetStats(ctx context.Context, userID string) (trigger.Snapshot, error)
}

// SubmissionService grades answers and keeps the per-(user, test)
// submission records consistent: attempts are serialized per key, the retry
// delay is enforced, and a failed persist is surfaced, never swallowed — a
// lost attempt write would let a user bypass the cool-down.
type SubmissionService struct {
	store  Store
	loader content.Loader
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool          // "user|test" → submit in progress
	cache    map[string]*exam.Content // content keyed by test id
}

// NewSubmissionService creates a SubmissionService.
func NewSubmissionService(s Store, loader content.Loader, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		store:    s,
		loader:   loader,
		logger:   logger,
		now:      time.Now,
		inFlight: make(map[string]bool),
		cache:    make(map[string]*exam.Content),
	}
}

// SubmitResult is what the app shows after grading an attempt.
type SubmitResult struct {
	grading.Result
	Attempts         []exam.Attempt `json:"attempts"`
	RetryAvailableAt time.Time      `json:"retry_available_at"`
	DaysUntilRetry   int            `json:"days_until_retry"`
}

// SubmitAndGrade grades the answers against the test content, appends the
// attempt to the user's submission (creating it on first submit) and
// persists the whole record atomically.
func (ss *SubmissionService) SubmitAndGrade(ctx context.Context, userID, testID, lang string, answers question.AnswerSet) (*SubmitResult, error) {
	if !ss.acquire(userID, testID) {
		return nil, ErrSubmissionInFlight
	}
	defer ss.release(userID, testID)

	test, err := ss.store.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	c, err := ss.Content(ctx, testID)
	if err != nil {
		return nil, err
	}

	sub, err := ss.store.GetSubmission(ctx, userID, testID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		sub = exam.NewSubmission(userID, testID)
	}

	result := grading.Grade(test, c, lang, answers)
	now := ss.now()

	attempt := exam.Attempt{
		Timestamp:    now,
		ScorePercent: result.ScorePercent,
		Passed:       result.Passed,
		Answers:      answers,
	}
	if err := sub.AppendAttempt(attempt, test.RetryDelayDays); err != nil {
		return nil, err
	}

	if err := ss.store.SaveSubmission(ctx, sub); err != nil {
		ss.logger.Error("failed to persist attempt",
			"user_id", userID,
			"test_id", testID,
			"error", err,
		)
		return nil, fmt.Errorf("saving attempt for test %s: %w", testID, err)
	}

	ss.logger.Info("attempt graded",
		"user_id", userID,
		"test_id", testID,
		"score", result.ScorePercent,
		"passed", result.Passed,
	)

	return &SubmitResult{
		Result:           result,
		Attempts:         sub.Attempts,
		RetryAvailableAt: sub.RetryAvailableAt(test.RetryDelayDays),
		DaysUntilRetry:   sub.DaysUntilRetry(now, test.RetryDelayDays),
	}, nil
}

// acquire claims the (user, test) submission key. Every path that saves a
// submission must hold it: saves rewrite the whole record, so an unguarded
// write racing a submit could drop the new attempt.
func (ss *SubmissionService) acquire(userID, testID string) bool {
	key := userID + "|" + testID
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.inFlight[key] {
		return false
	}
	ss.inFlight[key] = true
	return true
}

func (ss *SubmissionService) release(userID, testID string) {
	ss.mu.Lock()
	delete(ss.inFlight, userID+"|"+testID)
	ss.mu.Unlock()
}

// MarkReviewedOnce records that the user has viewed their graded answers.
// Idempotent: marking an already-reviewed submission is a no-op.
func (ss *SubmissionService) MarkReviewedOnce(ctx context.Context, userID, testID string) error {
	if !ss.acquire(userID, testID) {
		return ErrSubmissionInFlight
	}
	defer ss.release(userID, testID)

	sub, err := ss.store.GetSubmission(ctx, userID, testID)
	if err != nil {
		return err
	}
	if sub.ReviewedOnce {
		return nil
	}
	sub.MarkReviewed()
	return ss.store.SaveSubmission(ctx, sub)
}

// ReviewQuestion is one question of a graded submission as shown back to
// the user. Reveal on the enclosing ReviewResult says whether correct
// answers may be displayed.
type ReviewQuestion struct {
	Question question.Question `json:"question"`
	Answer   *question.Answer  `json:"answer,omitempty"`
	Correct  *bool             `json:"correct"`
}

// ReviewResult is a read-only view of the user's last graded attempt.
type ReviewResult struct {
	TestID         string           `json:"test_id"`
	Language       string           `json:"language"`
	ScorePercent   float64          `json:"score_percent"`
	Passed         *bool            `json:"passed"`
	Reveal         bool             `json:"reveal"`
	DaysUntilRetry int              `json:"days_until_retry"`
	Questions      []ReviewQuestion `json:"questions"`
}

// Review returns the user's graded submission for display. A passed test is
// always re-viewable with correct answers shown. A failed test reveals
// correct answers exactly once: the first view marks the submission
// reviewed, and later views (while the retry delay runs) hide them. This is
// the anti-cheating control: peek, memorize, retry must not work.
func (ss *SubmissionService) Review(ctx context.Context, userID, testID, lang string) (*ReviewResult, error) {
	if !ss.acquire(userID, testID) {
		return nil, ErrSubmissionInFlight
	}
	defer ss.release(userID, testID)

	sub, err := ss.store.GetSubmission(ctx, userID, testID)
	if err != nil {
		return nil, err
	}

	test, err := ss.store.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	c, err := ss.Content(ctx, testID)
	if err != nil {
		return nil, err
	}

	questions, resolved := c.Resolve(lang)

	reveal := false
	if sub.Passed != nil {
		if *sub.Passed {
			reveal = true
		} else if !sub.ReviewedOnce {
			reveal = true
			sub.MarkReviewed()
			if err := ss.store.SaveSubmission(ctx, sub); err != nil {
				return nil, fmt.Errorf("marking submission reviewed: %w", err)
			}
		}
	}

	review := &ReviewResult{
		TestID:         testID,
		Language:       resolved,
		ScorePercent:   sub.ScorePercent(),
		Passed:         sub.Passed,
		Reveal:         reveal,
		DaysUntilRetry: sub.DaysUntilRetry(ss.now(), test.RetryDelayDays),
	}

	for i := range questions {
		q := questions[i]
		if q.ID == question.DisclaimerID {
			continue
		}
		ans := sub.Answers.Get(q.ID)
		rq := ReviewQuestion{
			Question: q,
			Answer:   ans,
			Correct:  q.Check(ans),
		}
		if !reveal {
			rq.Question = q.Redacted()
		}
		review.Questions = append(review.Questions, rq)
	}

	return review, nil
}

// Content loads a test's content package through the loader, deduplicating
// repeated loads per test id. An abandoned load caches nothing.
func (ss *SubmissionService) Content(ctx context.Context, testID string) (*exam.Content, error) {
	ss.mu.Lock()
	if c, ok := ss.cache[testID]; ok {
		ss.mu.Unlock()
		return c, nil
	}
	ss.mu.Unlock()

	c, err := ss.loader.LoadTestContent(ctx, testID)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	ss.cache[testID] = c
	ss.mu.Unlock()
	return c, nil
}

// InvalidateContent drops the cached package for a test. Called after a
// content re-upload so grading never runs against the replaced package.
func (ss *SubmissionService) InvalidateContent(testID string) {
	ss.mu.Lock()
	delete(ss.cache, testID)
	ss.mu.Unlock()
}
