package trigger

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a comparison operator applied to a statistic.
type Op string

const (
	OpGTE Op = ">="
	OpGT  Op = ">"
	OpEQ  Op = "=="
	OpLTE Op = "<="
	OpLT  Op = "<"
)

// Snapshot is a point-in-time view of a student's aggregated flight
// statistics, keyed by stat name. It is read-only input to evaluation;
// a single classification pass must reuse one snapshot throughout.
type Snapshot map[string]float64

// Trigger is a boolean unlock condition over a statistics snapshot.
type Trigger struct {
	Stat        string  `json:"stat"`
	Op          Op      `json:"op"`
	Threshold   float64 `json:"threshold"`
	Description string  `json:"description,omitempty"` // display template, may use {stat} and {threshold}
}

// Evaluate applies the trigger to a snapshot. A stat missing from the
// snapshot reads as zero, so unmet data keeps the test locked instead of
// erroring. An unknown operator also fails closed.
func (t Trigger) Evaluate(s Snapshot) bool {
	value := s[t.Stat]
	switch t.Op {
	case OpGTE:
		return value >= t.Threshold
	case OpGT:
		return value > t.Threshold
	case OpEQ:
		return value == t.Threshold
	case OpLTE:
		return value <= t.Threshold
	case OpLT:
		return value < t.Threshold
	}
	return false
}

// Describe renders the trigger for display. The Description template wins
// when present; otherwise a plain "stat op threshold" string is built.
func (t Trigger) Describe() string {
	if t.Description != "" {
		out := strings.ReplaceAll(t.Description, "{stat}", t.Stat)
		return strings.ReplaceAll(out, "{threshold}", strconv.FormatFloat(t.Threshold, 'f', -1, 64))
	}
	return fmt.Sprintf("%s %s %s", t.Stat, t.Op, strconv.FormatFloat(t.Threshold, 'f', -1, 64))
}

// AllMet reports whether every trigger evaluates true against the snapshot.
// An empty trigger list is always met.
func AllMet(triggers []Trigger, s Snapshot) bool {
	for _, t := range triggers {
		if !t.Evaluate(s) {
			return false
		}
	}
	return true
}
