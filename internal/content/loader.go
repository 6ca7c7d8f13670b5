package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclass/backend/internal/domain/exam"
)

// ErrNotFound means the content service has no package for the test.
var ErrNotFound = errors.New("test content not found")

// Loader fetches the question content for a test. Implementations may call
// a remote content service, read the local store, or return canned content
// (for tests).
type Loader interface {
	LoadTestContent(ctx context.Context, testID string) (*exam.Content, error)
}

// LoadError is returned when a content load fails so the caller can
// distinguish "content does not exist" from "content service unreachable."
type LoadError struct {
	TestID  string
	Reason  string
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("loading content for %s failed: %s: %v", e.TestID, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("loading content for %s failed: %s", e.TestID, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}
