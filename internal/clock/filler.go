package clock

import (
	"strings"

	"study-planner/internal/model"
)

// DefaultFillerMarkers marks schedule entries that are not actual work:
// commutes, meals and transit. Matching is case-insensitive substring search
// over the task name, so iconographic variants are covered too.
var DefaultFillerMarkers = []string{
	"road home", "🚌 road home",
	"lunch", "🍽️ lunch",
	"commute", "🚶 commute", "🚕 commute", "🚌 commute",
}

var commuteMarkers = []string{"commute", "🚶", "🚕", "🚌"}

// Classifier decides whether a task name counts as real work. The decision
// is recomputed from the name everywhere, never stored.
type Classifier struct {
	markers []string
}

// NewClassifier builds a classifier; with no arguments it uses
// DefaultFillerMarkers.
func NewClassifier(markers ...string) *Classifier {
	if len(markers) == 0 {
		markers = DefaultFillerMarkers
	}
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return &Classifier{markers: lowered}
}

// IsRealTask reports whether the name is real work rather than a filler
// entry. Empty names are not real tasks.
func (c *Classifier) IsRealTask(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, m := range c.markers {
		if strings.Contains(lower, m) {
			return false
		}
	}
	return true
}

// FilterReal drops filler tasks, preserving input order.
func (c *Classifier) FilterReal(tasks []model.Task) []model.Task {
	var real []model.Task
	for _, t := range tasks {
		if c.IsRealTask(t.Name) {
			real = append(real, t)
		}
	}
	return real
}

// IsCommute matches the commute marker set used for notification phrasing.
// This is a wider match than the filler list: bare icons count.
func IsCommute(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range commuteMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
