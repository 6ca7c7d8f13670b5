// Package grading scores a set of submitted answers against a test's
// resolved question list. Grading is a pure function: it never touches
// storage and malformed input degrades to an incorrect verdict instead of
// an error, so a scoring pass cannot fail half way.
package grading

import (
	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
)

// QuestionResult is the verdict for one question. Correct is nil for
// questions that cannot be auto-graded (free text).
type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Correct    *bool  `json:"correct"`
}

// Result is the outcome of grading one attempt.
type Result struct {
	Passed       bool             `json:"passed"`
	ScorePercent float64          `json:"score_percent"`
	Correct      int              `json:"correct"`
	Total        int              `json:"total"`    // auto-gradable questions only
	Language     string           `json:"language"` // language the scoring basis was resolved to
	PerQuestion  []QuestionResult `json:"per_question"`
}

// Grade scores answers against the test's content. The question list is
// resolved once for the requested language (preferred → en → first
// available) and that resolved list is the scoring basis. The disclaimer
// pseudo-question is skipped, and free-text questions count toward neither
// total nor correct.
//
// ScorePercent is an unrounded percentage; with no gradable questions it
// is 100 so grading never divides by zero.
func Grade(t *exam.Test, c *exam.Content, lang string, answers question.AnswerSet) Result {
	questions, resolved := c.Resolve(lang)

	result := Result{Language: resolved}
	for i := range questions {
		q := &questions[i]
		if q.ID == question.DisclaimerID {
			continue
		}

		verdict := q.Check(answers.Get(q.ID))
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID: q.ID,
			Correct:    verdict,
		})

		if verdict == nil {
			continue
		}
		result.Total++
		if *verdict {
			result.Correct++
		}
	}

	if result.Total == 0 {
		result.ScorePercent = 100.0
	} else {
		result.ScorePercent = 100.0 * float64(result.Correct) / float64(result.Total)
	}
	result.Passed = result.ScorePercent >= t.PassThreshold

	return result
}
