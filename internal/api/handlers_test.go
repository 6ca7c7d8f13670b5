// internal/api/handlers_test.go
package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aeroclass/backend/internal/api"
	"github.com/aeroclass/backend/internal/service"
	"github.com/aeroclass/backend/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	submissions := service.NewSubmissionService(db, db, logger)
	handler := api.NewHandler(db, submissions, logger, "en")

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, data
}

func createFixtureTest(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/tests", map[string]any{
		"id":               "ppl-airlaw",
		"names":            map[string]string{"en": "Air Law", "de": "Luftrecht"},
		"pass_threshold":   50,
		"retry_delay_days": 3,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create test: got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/tests/ppl-airlaw/content", map[string]any{
		"disclaimer": "Practice material only.",
		"languages": map[string]any{
			"en": []map[string]any{
				{
					"id":             "q1",
					"kind":           "single_choice",
					"prompt":         "Class G airspace is",
					"options":        []string{"controlled", "uncontrolled"},
					"correct_option": 1,
				},
				{
					"id":           "q2",
					"kind":         "true_false",
					"prompt":       "A flight plan is always mandatory",
					"correct_bool": false,
				},
				{
					"id":     "q3",
					"kind":   "matching",
					"prompt": "Match cloud to type",
					"pairs": []map[string]string{
						{"left": "Cloud", "right": "Cumulus"},
						{"left": "Layer", "right": "Stratus"},
					},
				},
			},
		},
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("upload content: got %d: %s", resp.StatusCode, body)
	}
}

func TestCreateTest_GeneratesID(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/tests", map[string]any{
		"names":            map[string]string{"en": "Meteorology"},
		"pass_threshold":   70,
		"retry_delay_days": 1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(created.ID) != 16 {
		t.Errorf("got generated id %q, want 16 characters", created.ID)
	}
}

func TestCreateTest_RejectsBadTrigger(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/tests", map[string]any{
		"names":          map[string]string{"en": "Meteorology"},
		"pass_threshold": 70,
		"triggers": []map[string]any{
			{"stat": "flight_hours", "op": "between", "threshold": 10},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 for unknown trigger op", resp.StatusCode)
	}
}

func TestGetTestContent_StripsAnswers(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/tests/ppl-airlaw/content", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d: %s", resp.StatusCode, body)
	}

	for _, leak := range []string{"correct_option", "correct_options", "correct_bool", "reference_answer", "pairs"} {
		if bytes.Contains(body, []byte(leak)) {
			t.Errorf("content response leaks %q: %s", leak, body)
		}
	}

	var content struct {
		Language   string `json:"language"`
		Disclaimer string `json:"disclaimer"`
		Questions  []struct {
			ID     string   `json:"id"`
			Kind   string   `json:"kind"`
			Lefts  []string `json:"lefts"`
			Rights []string `json:"rights"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(body, &content); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if content.Language != "en" {
		t.Errorf("got language %q, want en", content.Language)
	}
	if content.Disclaimer == "" {
		t.Error("disclaimer missing from content response")
	}
	if len(content.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(content.Questions))
	}
	matching := content.Questions[2]
	if len(matching.Lefts) != 2 || len(matching.Rights) != 2 {
		t.Errorf("matching question should expose both columns: %+v", matching)
	}
}

func TestUploadContent_ReplacementIsServedFresh(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	// Prime the service's content cache.
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/tests/ppl-airlaw/content", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first fetch: got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/tests/ppl-airlaw/content", map[string]any{
		"disclaimer": "Revised material.",
		"languages": map[string]any{
			"en": []map[string]any{
				{
					"id":           "q9",
					"kind":         "true_false",
					"prompt":       "VFR minima depend on airspace class",
					"correct_bool": true,
				},
			},
		},
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("re-upload: got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/tests/ppl-airlaw/content", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second fetch: got %d: %s", resp.StatusCode, body)
	}
	var content struct {
		Disclaimer string `json:"disclaimer"`
		Questions  []struct {
			ID string `json:"id"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(body, &content); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if content.Disclaimer != "Revised material." {
		t.Errorf("got disclaimer %q, want the replacement", content.Disclaimer)
	}
	if len(content.Questions) != 1 || content.Questions[0].ID != "q9" {
		t.Errorf("got questions %+v, want only the replacement question", content.Questions)
	}
}

func TestGetTestContent_UnknownTest(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/tests/nope/content", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got %d, want 404", resp.StatusCode)
	}
}

func TestSubmitAndReviewFlow(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	submitURL := srv.URL + "/users/stu1/tests/ppl-airlaw/submission"
	resp, body := doJSON(t, http.MethodPost, submitURL, map[string]any{
		"answers": map[string]any{
			"q1": map[string]any{"kind": "choice", "choice": "uncontrolled"},
			"q2": map[string]any{"kind": "bool", "bool": false},
			"q3": map[string]any{"kind": "matching", "matches": map[string]string{
				"Cloud": "Cumulus",
				"Layer": "Stratus",
			}},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: got %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Passed       bool    `json:"passed"`
		ScorePercent float64 `json:"score_percent"`
		Total        int     `json:"total"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if !result.Passed || result.ScorePercent != 100 || result.Total != 3 {
		t.Errorf("got %+v, want a perfect pass over 3 questions", result)
	}

	// A passed test cannot be submitted again.
	resp, _ = doJSON(t, http.MethodPost, submitURL, map[string]any{
		"answers": map[string]any{},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("resubmit after pass: got %d, want 409", resp.StatusCode)
	}

	// Review shows the graded attempt with correct answers revealed.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/stu1/tests/ppl-airlaw/review", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("review: got %d: %s", resp.StatusCode, body)
	}
	var review struct {
		Reveal    bool `json:"reveal"`
		Questions []struct {
			Correct *bool `json:"correct"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(body, &review); err != nil {
		t.Fatalf("decoding review: %v", err)
	}
	if !review.Reveal {
		t.Error("review of a passed test should reveal")
	}
	if len(review.Questions) != 3 {
		t.Errorf("got %d review questions, want 3", len(review.Questions))
	}
}

func TestSubmit_RetryDelayReturns429(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	submitURL := srv.URL + "/users/stu1/tests/ppl-airlaw/submission"
	wrong := map[string]any{
		"answers": map[string]any{
			"q1": map[string]any{"kind": "choice", "choice": "controlled"},
		},
	}

	resp, body := doJSON(t, http.MethodPost, submitURL, wrong)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first submit: got %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Passed         bool `json:"passed"`
		DaysUntilRetry int  `json:"days_until_retry"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.Passed {
		t.Fatal("all-wrong submission should fail")
	}
	if result.DaysUntilRetry != 3 {
		t.Errorf("got %d days until retry, want 3", result.DaysUntilRetry)
	}

	resp, _ = doJSON(t, http.MethodPost, submitURL, wrong)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("immediate retry: got %d, want 429", resp.StatusCode)
	}
}

func TestSubmit_BadBody(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users/stu1/tests/ppl-airlaw/submission", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 when answers are missing", resp.StatusCode)
	}
}

func TestReview_NoSubmissionIs404(t *testing.T) {
	srv := newTestServer(t)
	createFixtureTest(t, srv)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/users/stu1/tests/ppl-airlaw/review", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got %d, want 404", resp.StatusCode)
	}
}

func TestFlightStatsUnlockFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/tests", map[string]any{
		"id":               "navigation",
		"names":            map[string]string{"en": "Navigation"},
		"pass_threshold":   75,
		"retry_delay_days": 3,
		"triggers": []map[string]any{
			{"stat": "flight_hours", "op": ">=", "threshold": 10, "description": "Log {threshold} flight hours"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create test: got %d: %s", resp.StatusCode, body)
	}

	listURL := srv.URL + "/users/stu1/tests"
	resp, body = doJSON(t, http.MethodGet, listURL, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got %d: %s", resp.StatusCode, body)
	}
	var list []struct {
		TestID       string   `json:"test_id"`
		Status       string   `json:"status"`
		Requirements []string `json:"requirements"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].Status != "locked" {
		t.Fatalf("got %+v, want the test locked for a fresh user", list)
	}
	if len(list[0].Requirements) != 1 || list[0].Requirements[0] != "Log 10 flight hours" {
		t.Errorf("got requirements %v", list[0].Requirements)
	}

	// Two flights later the trigger threshold is crossed.
	for i := 0; i < 2; i++ {
		resp, body = doJSON(t, http.MethodPost, srv.URL+"/users/stu1/flights", map[string]any{
			"stats": map[string]float64{"flight_hours": 5.5, "landings": 3},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("record flight: got %d: %s", resp.StatusCode, body)
		}
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/stu1/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: got %d: %s", resp.StatusCode, body)
	}
	var stats struct {
		Stats map[string]float64 `json:"stats"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.Stats["flight_hours"] != 11 {
		t.Errorf("got %v flight hours, want 11", stats.Stats["flight_hours"])
	}

	resp, body = doJSON(t, http.MethodGet, listURL, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if list[0].Status != "unlocked" {
		t.Errorf("got status %q after logging 11 hours, want unlocked", list[0].Status)
	}
}
