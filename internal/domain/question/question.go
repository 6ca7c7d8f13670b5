package question

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
)

type Kind string

const (
	KindSingleChoice   Kind = "single_choice"
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindFreeText       Kind = "free_text"
	KindMatching       Kind = "matching"
)

// DisclaimerID marks the pseudo-question that carries a test's disclaimer
// text. It is never scored.
const DisclaimerID = "disclaimer"

// Pair is one canonical left→right association of a matching question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a single quiz question. Which correctness fields are
// meaningful depends on Kind.
type Question struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Prompt   string  `json:"prompt"`
	ImageRef *string `json:"image_ref,omitempty"`

	Options        []string `json:"options,omitempty"`         // single/multiple choice
	CorrectOption  int      `json:"correct_option"`            // single choice
	CorrectOptions []int    `json:"correct_options,omitempty"` // multiple choice
	CorrectBool    bool     `json:"correct_bool"`              // true/false

	ReferenceAnswer *string `json:"reference_answer,omitempty"` // free text, display only
	Pairs           []Pair  `json:"pairs,omitempty"`            // matching
}

// Validate checks that every index referenced by the correct-answer data is
// valid within the option list, and that matching pairs are well formed.
func (q *Question) Validate() error {
	switch q.Kind {
	case KindSingleChoice:
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return fmt.Errorf("question %s: correct option index %d out of range (have %d options)", q.ID, q.CorrectOption, len(q.Options))
		}
	case KindMultipleChoice:
		if len(q.CorrectOptions) == 0 {
			return fmt.Errorf("question %s: multiple choice needs at least one correct option", q.ID)
		}
		for _, idx := range q.CorrectOptions {
			if idx < 0 || idx >= len(q.Options) {
				return fmt.Errorf("question %s: correct option index %d out of range (have %d options)", q.ID, idx, len(q.Options))
			}
		}
	case KindTrueFalse, KindFreeText:
		// nothing to cross-check
	case KindMatching:
		if len(q.Pairs) == 0 {
			return fmt.Errorf("question %s: matching needs at least one pair", q.ID)
		}
		seen := make(map[string]bool, len(q.Pairs))
		for _, p := range q.Pairs {
			if p.Left == "" || p.Right == "" {
				return fmt.Errorf("question %s: matching pair has an empty side", q.ID)
			}
			if seen[p.Left] {
				return fmt.Errorf("question %s: duplicate left item %q", q.ID, p.Left)
			}
			seen[p.Left] = true
		}
	default:
		return errors.New("unknown question kind: " + string(q.Kind))
	}
	return nil
}

// Check grades a submitted answer. It returns nil for free-text questions
// (not auto-gradable) and for everything else a definite verdict. A missing
// answer or an answer of the wrong shape grades as incorrect, never as an
// error.
func (q *Question) Check(a *Answer) *bool {
	if q.Kind == KindFreeText {
		return nil
	}
	if a == nil {
		return verdict(false)
	}

	switch q.Kind {
	case KindSingleChoice:
		choice, ok := a.Choice()
		if !ok {
			return verdict(false)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return verdict(false)
		}
		return verdict(choice == q.Options[q.CorrectOption])

	case KindMultipleChoice:
		selected, ok := a.Selection()
		if !ok {
			return verdict(false)
		}
		want := make(map[string]bool, len(q.CorrectOptions))
		for _, idx := range q.CorrectOptions {
			if idx < 0 || idx >= len(q.Options) {
				return verdict(false)
			}
			want[q.Options[idx]] = true
		}
		// Compare distinct sets: a duplicated option must not stand in
		// for a missing correct one.
		got := make(map[string]bool, len(selected))
		for _, s := range selected {
			got[s] = true
		}
		if len(got) != len(want) {
			return verdict(false)
		}
		for s := range got {
			if !want[s] {
				return verdict(false)
			}
		}
		return verdict(true)

	case KindTrueFalse:
		b, ok := a.Bool()
		if !ok {
			return verdict(false)
		}
		return verdict(b == q.CorrectBool)

	case KindMatching:
		got, ok := a.Matches()
		if !ok {
			return verdict(false)
		}
		// Exact match: every canonical pair present, no extra left keys.
		if len(got) != len(q.Pairs) {
			return verdict(false)
		}
		for _, p := range q.Pairs {
			if got[p.Left] != p.Right {
				return verdict(false)
			}
		}
		return verdict(true)
	}

	return verdict(false)
}

// ShuffledRight returns the right-hand items of a matching question in a
// shuffled order that is stable for this question: the same question always
// shuffles the same way, so a rendering does not reshuffle under the user.
func (q *Question) ShuffledRight() []string {
	items := make([]string, len(q.Pairs))
	for i, p := range q.Pairs {
		items[i] = p.Right
	}

	h := fnv.New64a()
	h.Write([]byte(q.ID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}

// Redacted returns a copy of the question with every correct-answer field
// stripped, safe to hand to a test taker. For matching questions the pairs
// are decoupled: lefts keep their canonical order while rights are replaced
// by the stable shuffle, so position i no longer pairs left with right.
func (q *Question) Redacted() Question {
	out := *q
	out.CorrectOption = -1
	out.CorrectOptions = nil
	out.CorrectBool = false
	out.ReferenceAnswer = nil

	if q.Kind == KindMatching && len(q.Pairs) > 0 {
		rights := q.ShuffledRight()
		pairs := make([]Pair, len(q.Pairs))
		for i, p := range q.Pairs {
			pairs[i] = Pair{Left: p.Left, Right: rights[i]}
		}
		out.Pairs = pairs
	}
	return out
}

func verdict(b bool) *bool {
	return &b
}
