// internal/service/availability.go
package service

import (
	"context"
	"time"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/trigger"
)

// TestStatus is the bucket a test lands in on the user's test list.
type TestStatus string

const (
	StatusPassed   TestStatus = "passed"
	StatusFailed   TestStatus = "failed"
	StatusLocked   TestStatus = "locked"
	StatusUnlocked TestStatus = "unlocked"
)

// TestAvailability is one entry of the user's test list: the bucket plus
// the attributes the app renders for that bucket.
type TestAvailability struct {
	TestID         string     `json:"test_id"`
	Name           string     `json:"name"`
	Status         TestStatus `json:"status"`
	ScorePercent   *float64   `json:"score_percent,omitempty"`
	CanRetryNow    bool       `json:"can_retry_now"`
	DaysUntilRetry int        `json:"days_until_retry"`
	Requirements   []string   `json:"requirements,omitempty"`
}

// Classify sorts every test into exactly one bucket. A graded submission
// always wins over the trigger state: a test passed before it relocked (or
// failed while still locked) stays passed or failed. Only tests with no
// graded attempt fall through to the locked/unlocked split.
func Classify(tests []*exam.Test, subs map[string]*exam.Submission, stats trigger.Snapshot, lang string, now time.Time) []TestAvailability {
	out := make([]TestAvailability, 0, len(tests))
	for _, t := range tests {
		av := TestAvailability{
			TestID: t.ID,
			Name:   t.Name(lang),
		}

		sub := subs[t.ID]
		switch {
		case sub != nil && sub.Passed != nil && *sub.Passed:
			av.Status = StatusPassed
			score := sub.ScorePercent()
			av.ScorePercent = &score

		case sub != nil && sub.Passed != nil:
			av.Status = StatusFailed
			score := sub.ScorePercent()
			av.ScorePercent = &score
			av.CanRetryNow = sub.CanRetryNow(now, t.RetryDelayDays)
			av.DaysUntilRetry = sub.DaysUntilRetry(now, t.RetryDelayDays)

		case !t.Unlocked(stats):
			av.Status = StatusLocked
			for _, tr := range t.Triggers {
				if !tr.Evaluate(stats) {
					av.Requirements = append(av.Requirements, tr.Describe())
				}
			}

		default:
			av.Status = StatusUnlocked
		}

		out = append(out, av)
	}
	return out
}

// AvailabilityForUser classifies every known test for one user against a
// single stats snapshot, so the list is internally consistent even while
// flights are being logged concurrently.
func (ss *SubmissionService) AvailabilityForUser(ctx context.Context, userID, lang string) ([]TestAvailability, error) {
	tests, err := ss.store.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := ss.store.ListSubmissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := ss.store.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Classify(tests, subs, stats, lang, ss.now()), nil
}
