package exam

import (
	"fmt"
	"sort"

	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/domain/trigger"
)

// FallbackLanguage is the language every content package is expected to
// carry (or be substitutable for).
const FallbackLanguage = "en"

// Test is the metadata of one theory test: identity, localized display
// names, pass threshold, retry delay and unlock triggers. All triggers
// must hold for the test to unlock; no triggers means always unlocked.
type Test struct {
	ID             string            `json:"id"`
	Names          map[string]string `json:"names"`            // language → display name
	PassThreshold  float64           `json:"pass_threshold"`   // 0–100
	RetryDelayDays int               `json:"retry_delay_days"` // cool-down after a failed attempt
	Triggers       []trigger.Trigger `json:"triggers,omitempty"`
}

// Name returns the display name for a language, falling back the same way
// content resolution does.
func (t *Test) Name(lang string) string {
	if n, ok := t.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := t.Names[FallbackLanguage]; ok && n != "" {
		return n
	}
	for _, l := range sortedKeys(t.Names) {
		if t.Names[l] != "" {
			return t.Names[l]
		}
	}
	return t.ID
}

// Unlocked reports whether the test's triggers are satisfied by the
// snapshot.
func (t *Test) Unlocked(stats trigger.Snapshot) bool {
	return trigger.AllMet(t.Triggers, stats)
}

// Content is a test's question material, one ordered question list per
// language. Question IDs and correctness data must be identical across
// language variants; only prompt and option text differ.
type Content struct {
	TestID     string                         `json:"test_id"`
	Languages  map[string][]question.Question `json:"languages"`
	Disclaimer string                         `json:"disclaimer,omitempty"` // shown before first submission
}

// Resolve picks the question list for the preferred language, falling back
// to en and then to the first available language (lexicographic, so the
// choice is deterministic). It returns the list together with the language
// actually used.
func (c *Content) Resolve(preferred string) ([]question.Question, string) {
	if qs, ok := c.Languages[preferred]; ok && len(qs) > 0 {
		return qs, preferred
	}
	if qs, ok := c.Languages[FallbackLanguage]; ok && len(qs) > 0 {
		return qs, FallbackLanguage
	}
	for _, lang := range sortedKeys(c.Languages) {
		if qs := c.Languages[lang]; len(qs) > 0 {
			return qs, lang
		}
	}
	return nil, ""
}

// Validate checks every question in every language variant.
func (c *Content) Validate() error {
	for lang, qs := range c.Languages {
		for i := range qs {
			if qs[i].ID == question.DisclaimerID {
				continue
			}
			if err := qs[i].Validate(); err != nil {
				return fmt.Errorf("content %s (%s): %w", c.TestID, lang, err)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
