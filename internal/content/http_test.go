package content_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aeroclass/backend/internal/content"
	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
)

func TestLoadTestContent_OK(t *testing.T) {
	want := exam.Content{
		TestID: "t1",
		Languages: map[string][]question.Question{
			"en": {
				{ID: "q1", Kind: question.KindTrueFalse, Prompt: "Thermals rise", CorrectBool: true},
			},
		},
		Disclaimer: "Study the theory material first.",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tests/t1/content" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	loader := content.NewHTTPLoader(srv.URL)
	got, err := loader.LoadTestContent(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TestID != "t1" {
		t.Errorf("expected test id t1, got %q", got.TestID)
	}
	if got.Disclaimer != want.Disclaimer {
		t.Errorf("disclaimer lost: %q", got.Disclaimer)
	}
	qs, lang := got.Resolve("en")
	if lang != "en" || len(qs) != 1 || qs[0].ID != "q1" {
		t.Errorf("content questions lost: %v (%q)", qs, lang)
	}
}

func TestLoadTestContent_NotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	loader := content.NewHTTPLoader(srv.URL)
	_, err := loader.LoadTestContent(context.Background(), "missing")
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retry on 404, got %d calls", calls)
	}
}

func TestLoadTestContent_RetriesTransientFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(exam.Content{TestID: "t1"})
	}))
	defer srv.Close()

	loader := content.NewHTTPLoader(srv.URL)
	got, err := loader.LoadTestContent(context.Background(), "t1")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got.TestID != "t1" {
		t.Errorf("unexpected content: %+v", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestLoadTestContent_GivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := content.NewHTTPLoader(srv.URL)
	_, err := loader.LoadTestContent(context.Background(), "t1")
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}

	var le *content.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if le.TestID != "t1" {
		t.Errorf("expected test id in error, got %q", le.TestID)
	}
}
