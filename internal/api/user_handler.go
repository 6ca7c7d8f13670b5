// internal/api/user_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type SubmitRequest struct {
	Answers question.AnswerSet `json:"answers"`
}

func (r *SubmitRequest) Validate() error {
	if r.Answers == nil {
		return errors.New("answers is required")
	}
	return nil
}

type RecordFlightRequest struct {
	Stats map[string]float64 `json:"stats"`
}

func (r *RecordFlightRequest) Validate() error {
	if len(r.Stats) == 0 {
		return errors.New("stats is required")
	}
	return nil
}

type StatsResponse struct {
	UserID string             `json:"user_id" example:"u1a2b3c4"`
	Stats  map[string]float64 `json:"stats"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listUserTests returns every test classified for one student.
// @Summary      List tests for a user
// @Description  Classifies each test as passed, failed, locked or unlocked against the user's submissions and flight statistics, with retry and unlock details per entry.
// @Tags         Users
// @Produce      json
// @Param        userID  path      string  true   "User ID"
// @Param        lang    query     string  false  "Preferred language for test names"
// @Success      200     {array}   service.TestAvailability
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/tests [get]
func (h *Handler) listUserTests(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	list, err := h.submissions.AvailabilityForUser(r.Context(), userID, h.lang(r))
	if err != nil {
		h.logger.Error("failed to classify tests", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tests")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// submitAnswers grades a submission attempt.
// @Summary      Submit answers for a test
// @Description  Grades the answers and appends the attempt to the user's submission. Rejected while a previous submit is still running, after a pass, or during the retry cool-down.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        userID  path      string         true   "User ID"
// @Param        testID  path      string         true   "Test ID"
// @Param        lang    query     string         false  "Preferred language"
// @Param        body    body      SubmitRequest  true   "Answers keyed by question ID"
// @Success      200     {object}  service.SubmitResult
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string  "already passed or submit in progress"
// @Failure      429     {object}  map[string]string  "retry delay still running"
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/tests/{testID}/submission [post]
func (h *Handler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	testID := r.PathValue("testID")

	var req SubmitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.submissions.SubmitAndGrade(r.Context(), userID, testID, h.lang(r), req.Answers)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, result)
	case errors.Is(err, service.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "a submission for this test is already being processed")
	case errors.Is(err, exam.ErrAlreadyPassed):
		respondError(w, http.StatusConflict, "test already passed")
	case errors.Is(err, exam.ErrRetryNotAvailable):
		respondError(w, http.StatusTooManyRequests, "retry delay has not elapsed yet")
	default:
		h.handleStoreError(w, err, "test")
	}
}

// reviewSubmission shows the user their graded answers.
// @Summary      Review a graded submission
// @Description  Returns the last graded attempt. Correct answers are revealed for passed tests always, and for failed tests exactly once.
// @Tags         Users
// @Produce      json
// @Param        userID  path      string  true   "User ID"
// @Param        testID  path      string  true   "Test ID"
// @Param        lang    query     string  false  "Preferred language"
// @Success      200     {object}  service.ReviewResult
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string  "submit in progress"
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/tests/{testID}/review [get]
func (h *Handler) reviewSubmission(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	testID := r.PathValue("testID")

	review, err := h.submissions.Review(r.Context(), userID, testID, h.lang(r))
	if errors.Is(err, service.ErrSubmissionInFlight) {
		respondError(w, http.StatusConflict, "a submission for this test is already being processed")
		return
	}
	if h.handleStoreError(w, err, "submission") {
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// markReviewed acknowledges that the user has seen their graded answers.
// @Summary      Mark a submission as reviewed
// @Description  Records the one-time review of a graded submission. Idempotent.
// @Tags         Users
// @Param        userID  path  string  true  "User ID"
// @Param        testID  path  string  true  "Test ID"
// @Success      204     "marked"
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string  "submit in progress"
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/tests/{testID}/reviewed [post]
func (h *Handler) markReviewed(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	testID := r.PathValue("testID")

	err := h.submissions.MarkReviewedOnce(r.Context(), userID, testID)
	if errors.Is(err, service.ErrSubmissionInFlight) {
		respondError(w, http.StatusConflict, "a submission for this test is already being processed")
		return
	}
	if h.handleStoreError(w, err, "submission") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordFlight adds a completed flight's statistics to the user's totals.
// @Summary      Record flight statistics
// @Description  Accumulates the given stat deltas into the user's totals and returns the updated snapshot. Newly crossed trigger thresholds unlock tests on the next list call.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        userID  path      string               true  "User ID"
// @Param        body    body      RecordFlightRequest  true  "Stat deltas, e.g. flight_hours and landings"
// @Success      200     {object}  StatsResponse
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/flights [post]
func (h *Handler) recordFlight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	var req RecordFlightRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.store.AddFlightStats(ctx, userID, req.Stats); err != nil {
		h.logger.Error("failed to record flight", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record flight")
		return
	}

	stats, err := h.store.GetStats(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load stats", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, StatsResponse{UserID: userID, Stats: stats})
}

// getUserStats returns the user's aggregated flight statistics.
// @Summary      Get flight statistics
// @Tags         Users
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  StatsResponse
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/stats [get]
func (h *Handler) getUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	stats, err := h.store.GetStats(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load stats", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, StatsResponse{UserID: userID, Stats: stats})
}
