package habits

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitInput_Validate(t *testing.T) {
	in := HabitInput{
		Name:          "  Read  ",
		Category:      CategoryLearning,
		ScheduledDays: []Weekday{"Fri", "Mon", "Fri"},
		ScheduledTime: "07:30",
	}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Read", in.Name)
	assert.Equal(t, DefaultIcon, in.Icon)
	assert.Equal(t, DefaultColor, in.Color)
	assert.Equal(t, []Weekday{"Mon", "Fri"}, in.ScheduledDays)

	cases := []struct {
		name  string
		in    HabitInput
		field string
	}{
		{"missing name", HabitInput{Name: "   ", Category: CategoryOther}, "name"},
		{"long name", HabitInput{Name: strings.Repeat("x", 101), Category: CategoryOther}, "name"},
		{"missing category", HabitInput{Name: "Run"}, "category"},
		{"bad category", HabitInput{Name: "Run", Category: "Sleep"}, "category"},
		{"bad day", HabitInput{Name: "Run", Category: CategoryOther, ScheduledDays: []Weekday{"Monday"}}, "scheduledDays"},
		{"bad time", HabitInput{Name: "Run", Category: CategoryOther, ScheduledTime: "25:00"}, "scheduledTime"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestHabitPatch_Apply(t *testing.T) {
	h := &Habit{Name: "Read", Category: CategoryLearning, Icon: "📚", Color: "blue", Streak: 4}

	name := " Read more "
	emptyIcon := ""
	days := []Weekday{"Sun", "Sat"}
	require.NoError(t, HabitPatch{Name: &name, Icon: &emptyIcon, ScheduledDays: &days}.Apply(h))
	assert.Equal(t, "Read more", h.Name)
	assert.Equal(t, DefaultIcon, h.Icon)
	assert.Equal(t, "blue", h.Color)
	assert.Equal(t, []Weekday{"Sat", "Sun"}, h.ScheduledDays)
	assert.Equal(t, 4, h.Streak)

	bad := Category("nope")
	assert.ErrorIs(t, HabitPatch{Category: &bad}.Apply(h), ErrValidation)
	empty := ""
	assert.ErrorIs(t, HabitPatch{Name: &empty}.Apply(h), ErrValidation)
}

func TestHabit_IsScheduledOn(t *testing.T) {
	h := &Habit{}
	assert.True(t, h.IsScheduledOn("2024-03-10"))

	h.ScheduledDays = []Weekday{"Mon"}
	assert.False(t, h.IsScheduledOn("2024-03-10"))
	assert.True(t, h.IsScheduledOn("2024-03-11"))
}
