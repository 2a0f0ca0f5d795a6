package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"study-planner/internal/model"
)

func TestIsRealTask(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		name string
		real bool
	}{
		{"Math homework", true},
		{"🍽️ Lunch", false},
		{"lunch with tutor", false},
		{"🚌 Road Home", false},
		{"🚶 Commute", false},
		{"Commute planning essay", false},
		{"SAT practice test", true},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.real, c.IsRealTask(tc.name), "name %q", tc.name)
	}
}

func TestFilterRealPreservesOrder(t *testing.T) {
	c := NewClassifier()
	tasks := []model.Task{
		{Name: "🚌 Commute"},
		{Name: "IELTS reading"},
		{Name: "🍽️ Lunch"},
		{Name: "Olympiad prep"},
		{Name: "Essay draft"},
	}

	real := c.FilterReal(tasks)
	assert.Equal(t, []string{"IELTS reading", "Olympiad prep", "Essay draft"},
		[]string{real[0].Name, real[1].Name, real[2].Name})
	assert.Len(t, real, 3)
}

func TestCustomMarkers(t *testing.T) {
	c := NewClassifier("break")
	assert.False(t, c.IsRealTask("Coffee Break"))
	assert.True(t, c.IsRealTask("🍽️ Lunch"))
}

func TestIsCommute(t *testing.T) {
	assert.True(t, IsCommute("🚶 Commute"))
	assert.True(t, IsCommute("🚌 Road Home"))
	assert.False(t, IsCommute("🍽️ Lunch"))
	assert.False(t, IsCommute("Physics problems"))
}
