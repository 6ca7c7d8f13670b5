package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aeroclass/backend/internal/domain/exam"
)

// HTTPLoader fetches test content from a remote content service over
// plain JSON HTTP.
type HTTPLoader struct {
	url    string       // e.g. "http://content.internal:9090"
	client *http.Client // reused across calls
}

// Compile-time check: *HTTPLoader satisfies the Loader interface.
var _ Loader = (*HTTPLoader)(nil)

// NewHTTPLoader creates a loader that calls the given content service.
func NewHTTPLoader(url string) *HTTPLoader {
	return &HTTPLoader{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

const maxRetries = 2

// LoadTestContent fetches the content package for a test. Transient
// failures are retried once; a 404 maps to ErrNotFound and is not retried.
func (l *HTTPLoader) LoadTestContent(ctx context.Context, testID string) (*exam.Content, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		c, err := l.fetch(ctx, testID)
		if err == nil {
			return c, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		lastErr = err
	}

	return nil, &LoadError{
		TestID:  testID,
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

func (l *HTTPLoader) fetch(ctx context.Context, testID string) (*exam.Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url+"/tests/"+testID+"/content", nil)
	if err != nil {
		return nil, &LoadError{TestID: testID, Reason: "building request", Wrapped: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{TestID: testID, Reason: "content service unreachable", Wrapped: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &LoadError{TestID: testID, Reason: "no such content package", Wrapped: ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		return nil, &LoadError{TestID: testID, Reason: fmt.Sprintf("content service returned status %d", resp.StatusCode)}
	}

	var c exam.Content
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return nil, &LoadError{TestID: testID, Reason: "decoding content", Wrapped: err}
	}
	if c.TestID == "" {
		c.TestID = testID
	}
	return &c, nil
}
