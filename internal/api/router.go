// internal/api/router.go
package api

import "net/http"

// RegisterRoutes mounts every API route on the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Test catalog
	mux.HandleFunc("POST /tests", h.createTest)
	mux.HandleFunc("GET /tests", h.listTests)
	mux.HandleFunc("PUT /tests/{testID}/content", h.uploadContent)
	mux.HandleFunc("GET /tests/{testID}/content", h.getTestContent)

	// Per-user test flow
	mux.HandleFunc("GET /users/{userID}/tests", h.listUserTests)
	mux.HandleFunc("POST /users/{userID}/tests/{testID}/submission", h.submitAnswers)
	mux.HandleFunc("GET /users/{userID}/tests/{testID}/review", h.reviewSubmission)
	mux.HandleFunc("POST /users/{userID}/tests/{testID}/reviewed", h.markReviewed)

	// Flight statistics
	mux.HandleFunc("POST /users/{userID}/flights", h.recordFlight)
	mux.HandleFunc("GET /users/{userID}/stats", h.getUserStats)
}
