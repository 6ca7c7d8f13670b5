// internal/api/test_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/domain/trigger"
	"github.com/aeroclass/backend/internal/id"
)

// ── Request / Response types ────────────────────────────────────────────────

type TriggerRequest struct {
	Stat        string  `json:"stat" example:"flight_hours"`
	Op          string  `json:"op" example:">="`
	Threshold   float64 `json:"threshold" example:"10"`
	Description string  `json:"description,omitempty" example:"Log {threshold} flight hours"`
}

func (t *TriggerRequest) toDomain() trigger.Trigger {
	return trigger.Trigger{
		Stat:        t.Stat,
		Op:          trigger.Op(t.Op),
		Threshold:   t.Threshold,
		Description: t.Description,
	}
}

type CreateTestRequest struct {
	ID             string            `json:"id,omitempty" example:"ppl-airlaw"`
	Names          map[string]string `json:"names"`
	PassThreshold  float64           `json:"pass_threshold" example:"75"`
	RetryDelayDays int               `json:"retry_delay_days" example:"3"`
	Triggers       []TriggerRequest  `json:"triggers,omitempty"`
}

func (r *CreateTestRequest) Validate() error {
	if len(r.Names) == 0 {
		return errors.New("names is required")
	}
	if r.PassThreshold < 0 || r.PassThreshold > 100 {
		return errors.New("pass_threshold must be between 0 and 100")
	}
	if r.RetryDelayDays < 0 {
		return errors.New("retry_delay_days must not be negative")
	}
	for _, t := range r.Triggers {
		if t.Stat == "" {
			return errors.New("trigger stat is required")
		}
		switch trigger.Op(t.Op) {
		case trigger.OpGTE, trigger.OpGT, trigger.OpEQ, trigger.OpLTE, trigger.OpLT:
		default:
			return fmt.Errorf("invalid trigger op %q", t.Op)
		}
	}
	return nil
}

type TestResponse struct {
	ID             string            `json:"id" example:"ppl-airlaw"`
	Names          map[string]string `json:"names"`
	PassThreshold  float64           `json:"pass_threshold" example:"75"`
	RetryDelayDays int               `json:"retry_delay_days" example:"3"`
	Triggers       []TriggerRequest  `json:"triggers,omitempty"`
}

func newTestResponse(t *exam.Test) TestResponse {
	resp := TestResponse{
		ID:             t.ID,
		Names:          t.Names,
		PassThreshold:  t.PassThreshold,
		RetryDelayDays: t.RetryDelayDays,
	}
	for _, tr := range t.Triggers {
		resp.Triggers = append(resp.Triggers, TriggerRequest{
			Stat:        tr.Stat,
			Op:          string(tr.Op),
			Threshold:   tr.Threshold,
			Description: tr.Description,
		})
	}
	return resp
}

type UploadContentRequest struct {
	Languages  map[string][]question.Question `json:"languages"`
	Disclaimer string                         `json:"disclaimer,omitempty"`
}

func (r *UploadContentRequest) Validate() error {
	if len(r.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	c := exam.Content{Languages: r.Languages}
	return c.Validate()
}

// QuestionView is a question as shown to a test taker: prompt and choices
// only, never the correct answers. Matching questions get their left items
// in canonical order and their right items in the stable shuffled order.
type QuestionView struct {
	ID       string   `json:"id" example:"q1"`
	Kind     string   `json:"kind" example:"single_choice"`
	Prompt   string   `json:"prompt" example:"What does QNH mean?"`
	ImageRef *string  `json:"image_ref,omitempty"`
	Options  []string `json:"options,omitempty"`
	Lefts    []string `json:"lefts,omitempty"`
	Rights   []string `json:"rights,omitempty"`
}

func newQuestionView(q *question.Question) QuestionView {
	view := QuestionView{
		ID:       q.ID,
		Kind:     string(q.Kind),
		Prompt:   q.Prompt,
		ImageRef: q.ImageRef,
		Options:  q.Options,
	}
	if q.Kind == question.KindMatching {
		for _, p := range q.Pairs {
			view.Lefts = append(view.Lefts, p.Left)
		}
		view.Rights = q.ShuffledRight()
	}
	return view
}

type ContentResponse struct {
	TestID     string         `json:"test_id" example:"ppl-airlaw"`
	Language   string         `json:"language" example:"en"`
	Disclaimer string         `json:"disclaimer,omitempty"`
	Questions  []QuestionView `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createTest registers a new theory test.
// @Summary      Create a test
// @Description  Register a test with its localized names, pass threshold, retry delay and unlock triggers. An ID is generated when none is given.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTestRequest  true  "Test to create"
// @Success      201   {object}  TestResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /tests [post]
func (h *Handler) createTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateTestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	testID := req.ID
	if testID == "" {
		testID = id.GenerateID()
	}

	t := &exam.Test{
		ID:             testID,
		Names:          req.Names,
		PassThreshold:  req.PassThreshold,
		RetryDelayDays: req.RetryDelayDays,
	}
	for _, tr := range req.Triggers {
		t.Triggers = append(t.Triggers, tr.toDomain())
	}

	if err := h.store.SaveTest(ctx, t); err != nil {
		h.logger.Error("failed to save test", "test_id", testID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save test")
		return
	}

	respondJSON(w, http.StatusCreated, newTestResponse(t))
}

// listTests lists all registered tests.
// @Summary      List all tests
// @Description  Returns every test's metadata including triggers. Availability for a specific student comes from /users/{userID}/tests.
// @Tags         Tests
// @Produce      json
// @Success      200  {array}   TestResponse
// @Failure      500  {object}  map[string]string
// @Router       /tests [get]
func (h *Handler) listTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.store.ListTests(r.Context())
	if err != nil {
		h.logger.Error("failed to load tests", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tests")
		return
	}

	response := make([]TestResponse, len(tests))
	for i, t := range tests {
		response[i] = newTestResponse(t)
	}
	respondJSON(w, http.StatusOK, response)
}

// uploadContent stores a test's question material.
// @Summary      Upload test content
// @Description  Replaces the content package of a test: one question list per language plus an optional disclaimer.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Param        testID  path      string                true  "Test ID"
// @Param        body    body      UploadContentRequest  true  "Content package"
// @Success      204     "content stored"
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /tests/{testID}/content [put]
func (h *Handler) uploadContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	testID := r.PathValue("testID")

	_, err := h.store.GetTest(ctx, testID)
	if h.handleStoreError(w, err, "test") {
		return
	}

	var req UploadContentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := &exam.Content{
		TestID:     testID,
		Languages:  req.Languages,
		Disclaimer: req.Disclaimer,
	}
	if err := h.store.SaveContent(ctx, c); err != nil {
		h.logger.Error("failed to save content", "test_id", testID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save content")
		return
	}
	h.submissions.InvalidateContent(testID)

	w.WriteHeader(http.StatusNoContent)
}

// getTestContent returns the questions a student sees when taking a test.
// @Summary      Get test content
// @Description  Returns the question list in the requested language (falling back to en, then the first available) with all correct answers stripped.
// @Tags         Tests
// @Produce      json
// @Param        testID  path      string  true   "Test ID"
// @Param        lang    query     string  false  "Preferred language"
// @Success      200     {object}  ContentResponse
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /tests/{testID}/content [get]
func (h *Handler) getTestContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	testID := r.PathValue("testID")

	c, err := h.submissions.Content(ctx, testID)
	if h.handleStoreError(w, err, "test content") {
		return
	}

	questions, resolved := c.Resolve(h.lang(r))

	response := ContentResponse{
		TestID:     testID,
		Language:   resolved,
		Disclaimer: c.Disclaimer,
		Questions:  make([]QuestionView, len(questions)),
	}
	for i := range questions {
		response.Questions[i] = newQuestionView(&questions[i])
	}

	respondJSON(w, http.StatusOK, response)
}
