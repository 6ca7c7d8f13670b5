package question

import (
	"encoding/json"
	"fmt"
	"sort"
)

// AnswerKind tags which variant an Answer holds.
type AnswerKind string

const (
	AnswerChoice    AnswerKind = "choice"    // single option text
	AnswerSelection AnswerKind = "selection" // set of option texts
	AnswerBool      AnswerKind = "bool"
	AnswerText      AnswerKind = "text"
	AnswerMatching  AnswerKind = "matching" // left item → right item
)

// Answer is a tagged union over the shapes a submitted answer can have.
// The question's kind decides which variant it expects; a mismatched
// variant grades as incorrect rather than erroring.
type Answer struct {
	kind      AnswerKind
	choice    string
	selection []string
	boolVal   bool
	text      string
	matches   map[string]string
}

func NewChoice(option string) Answer {
	return Answer{kind: AnswerChoice, choice: option}
}

func NewSelection(options ...string) Answer {
	sel := make([]string, len(options))
	copy(sel, options)
	return Answer{kind: AnswerSelection, selection: sel}
}

func NewBool(v bool) Answer {
	return Answer{kind: AnswerBool, boolVal: v}
}

func NewText(text string) Answer {
	return Answer{kind: AnswerText, text: text}
}

func NewMatching(matches map[string]string) Answer {
	m := make(map[string]string, len(matches))
	for k, v := range matches {
		m[k] = v
	}
	return Answer{kind: AnswerMatching, matches: m}
}

func (a *Answer) Kind() AnswerKind { return a.kind }

func (a *Answer) Choice() (string, bool) {
	return a.choice, a.kind == AnswerChoice
}

func (a *Answer) Selection() ([]string, bool) {
	return a.selection, a.kind == AnswerSelection
}

func (a *Answer) Bool() (bool, bool) {
	return a.boolVal, a.kind == AnswerBool
}

func (a *Answer) Text() (string, bool) {
	return a.text, a.kind == AnswerText
}

func (a *Answer) Matches() (map[string]string, bool) {
	return a.matches, a.kind == AnswerMatching
}

// answerJSON is the wire/storage shape of an Answer.
type answerJSON struct {
	Kind      AnswerKind        `json:"kind"`
	Choice    string            `json:"choice,omitempty"`
	Selection []string          `json:"selection,omitempty"`
	Bool      *bool             `json:"bool,omitempty"`
	Text      string            `json:"text,omitempty"`
	Matches   map[string]string `json:"matches,omitempty"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	out := answerJSON{Kind: a.kind}
	switch a.kind {
	case AnswerChoice:
		out.Choice = a.choice
	case AnswerSelection:
		sel := make([]string, len(a.selection))
		copy(sel, a.selection)
		sort.Strings(sel)
		out.Selection = sel
	case AnswerBool:
		b := a.boolVal
		out.Bool = &b
	case AnswerText:
		out.Text = a.text
	case AnswerMatching:
		out.Matches = a.matches
	default:
		return nil, fmt.Errorf("cannot marshal answer of kind %q", a.kind)
	}
	return json.Marshal(out)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var in answerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case AnswerChoice:
		*a = NewChoice(in.Choice)
	case AnswerSelection:
		*a = NewSelection(in.Selection...)
	case AnswerBool:
		v := false
		if in.Bool != nil {
			v = *in.Bool
		}
		*a = NewBool(v)
	case AnswerText:
		*a = NewText(in.Text)
	case AnswerMatching:
		*a = NewMatching(in.Matches)
	default:
		return fmt.Errorf("unknown answer kind %q", in.Kind)
	}
	return nil
}

// AnswerSet maps question IDs to the answers a user submitted for them.
type AnswerSet map[string]Answer

// Get returns the answer for a question, or nil if the user left it blank.
func (s AnswerSet) Get(questionID string) *Answer {
	a, ok := s[questionID]
	if !ok {
		return nil
	}
	return &a
}
