package caretasks

import (
	"errors"
	"testing"
	"time"

	"pet-care-planner/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustNew(t *testing.T, in NewInput) CareTask {
	t.Helper()
	task, err := New(in)
	require.NoError(t, err)
	return task
}

func TestNew_Defaults(t *testing.T) {
	task := mustNew(t, NewInput{Name: " Walk Dog ", Duration: 30, Priority: "HIGH", PetName: "Buddy"})

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Walk Dog", task.Name)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, FrequencyOnce, task.Frequency)
	assert.False(t, task.Completed)
	assert.Equal(t, DateOf(time.Now()), task.DueDate)
	assert.Equal(t, "Buddy", task.PetName)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := mustNew(t, NewInput{Name: "A", Duration: 5, Priority: "low"})
	b := mustNew(t, NewInput{Name: "A", Duration: 5, Priority: "low"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    NewInput
		field string
	}{
		{name: "missing name", in: NewInput{Duration: 10, Priority: "high"}, field: "name"},
		{name: "zero duration", in: NewInput{Name: "Walk", Duration: 0, Priority: "high"}, field: "duration"},
		{name: "negative duration", in: NewInput{Name: "Walk", Duration: -5, Priority: "high"}, field: "duration"},
		{name: "bad priority", in: NewInput{Name: "Walk", Duration: 10, Priority: "urgent"}, field: "priority"},
		{name: "empty priority", in: NewInput{Name: "Walk", Duration: 10}, field: "priority"},
		{name: "bad frequency", in: NewInput{Name: "Walk", Duration: 10, Priority: "low", Frequency: "hourly"}, field: "frequency"},
		{name: "strict bad time", in: NewInput{Name: "Walk", Duration: 10, Priority: "low", PreferredTime: "25:00", StrictTime: true}, field: "preferred_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validation.ErrInvalid))

			ve, ok := validation.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNew_LenientTimeKeepsRawValue(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Walk", Duration: 10, Priority: "low", PreferredTime: "after lunch"})
	assert.Equal(t, "after lunch", task.PreferredTime)
	assert.False(t, task.Timed())
}

func TestMarkComplete_Once(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Grooming", Duration: 45, Priority: "medium", Frequency: "once"})

	next, err := task.MarkComplete()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.True(t, task.Completed)
}

func TestMarkComplete_Daily(t *testing.T) {
	task := mustNew(t, NewInput{
		Name: "Morning Walk", Duration: 30, Priority: "high", Frequency: "daily",
		DueDate: day(2024, 1, 1), PetName: "Buddy", Notes: "leash", PreferredTime: "07:00",
	})

	next, err := task.MarkComplete()
	require.NoError(t, err)
	require.NotNil(t, next)

	assert.True(t, task.Completed)
	assert.Equal(t, day(2024, 1, 1), task.DueDate)

	assert.False(t, next.Completed)
	assert.NotEqual(t, task.ID, next.ID)
	assert.Equal(t, day(2024, 1, 2), next.DueDate)
	assert.Equal(t, task.Name, next.Name)
	assert.Equal(t, task.Duration, next.Duration)
	assert.Equal(t, task.Priority, next.Priority)
	assert.Equal(t, task.PetName, next.PetName)
	assert.Equal(t, task.Notes, next.Notes)
	assert.Equal(t, task.PreferredTime, next.PreferredTime)
	assert.Equal(t, FrequencyDaily, next.Frequency)
}

func TestMarkComplete_Offsets(t *testing.T) {
	base := day(2024, 1, 1)
	tests := []struct {
		freq string
		want time.Time
	}{
		{"daily", day(2024, 1, 2)},
		{"weekly", day(2024, 1, 8)},
		{"biweekly", day(2024, 1, 15)},
		{"monthly", day(2024, 1, 31)},
		{"quarterly", day(2024, 3, 31)},
		// 2024 es bisiesto: +365 días no llega al 1 de enero
		{"yearly", day(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.freq, func(t *testing.T) {
			task := mustNew(t, NewInput{Name: "Meds", Duration: 5, Priority: "high", Frequency: tt.freq, DueDate: base})
			next, err := task.MarkComplete()
			require.NoError(t, err)
			require.NotNil(t, next)
			assert.Equal(t, tt.want, next.DueDate)
			assert.True(t, next.DueDate.After(task.DueDate))
		})
	}
}

func TestMarkComplete_Twice(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Feed", Duration: 10, Priority: "high", Frequency: "daily"})
	_, err := task.MarkComplete()
	require.NoError(t, err)

	_, err = task.MarkComplete()
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestMarkComplete_UnknownFrequency(t *testing.T) {
	task := CareTask{Name: "Feed", Duration: 10, Priority: PriorityHigh, Frequency: "fortnightly"}

	next, err := task.MarkComplete()
	assert.Nil(t, next)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.False(t, task.Completed)
}

func TestNextOccurrence_DoesNotMutate(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Brush", Duration: 10, Priority: "low", Frequency: "weekly", DueDate: day(2024, 5, 1)})

	next, err := task.NextOccurrence()
	require.NoError(t, err)
	assert.Equal(t, day(2024, 5, 8), next.DueDate)
	assert.Equal(t, day(2024, 5, 1), task.DueDate)
	assert.False(t, task.Completed)

	once := mustNew(t, NewInput{Name: "Vet", Duration: 60, Priority: "high"})
	_, err = once.NextOccurrence()
	assert.ErrorIs(t, err, ErrNotRecurring)
}

func TestApply(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Walk", Duration: 30, Priority: "low", DueDate: day(2024, 3, 10)})

	dur := 45
	prio := "high"
	pt := "6:30 PM"
	later := day(2024, 3, 12)
	updated, err := task.Apply(UpdateInput{Duration: &dur, Priority: &prio, PreferredTime: &pt, DueDate: &later, StrictTime: true})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Duration)
	assert.Equal(t, PriorityHigh, updated.Priority)
	assert.Equal(t, "6:30 PM", updated.PreferredTime)
	assert.Equal(t, later, updated.DueDate)

	// el original no cambia
	assert.Equal(t, 30, task.Duration)
}

func TestApply_Rejects(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Walk", Duration: 30, Priority: "low", DueDate: day(2024, 3, 10)})

	zero := 0
	_, err := task.Apply(UpdateInput{Duration: &zero})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	bad := "whenever"
	_, err = task.Apply(UpdateInput{Frequency: &bad})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	earlier := day(2024, 3, 9)
	_, err = task.Apply(UpdateInput{DueDate: &earlier})
	ve, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "due_date", ve.Field)

	badTime := "7pm"
	_, err = task.Apply(UpdateInput{PreferredTime: &badTime, StrictTime: true})
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestIsDue(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Walk", Duration: 30, Priority: "low", DueDate: day(2024, 3, 10)})
	assert.False(t, task.IsDue(day(2024, 3, 9)))
	assert.True(t, task.IsDue(time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)))
	assert.True(t, task.IsDue(day(2024, 3, 11)))
}

func TestString(t *testing.T) {
	task := mustNew(t, NewInput{Name: "Walk", Duration: 30, Priority: "high", PreferredTime: "08:00", Frequency: "daily"})
	assert.Equal(t, "Walk (30 min, high priority) at 08:00, daily", task.String())
}
