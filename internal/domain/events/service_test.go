package events_test

import (
	"context"
	"testing"
	"time"

	"pet-care-planner/internal/adapters/storage/memory"
	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/events"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"
	"pet-care-planner/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsCompletionAndRecurrence(t *testing.T) {
	ctx := context.Background()
	log := events.NewService(memory.NewEventRepo(), nil)

	tasks := caretasks.NewService(memory.NewCareTaskRepo(), nil)
	tasks.OnComplete(log)

	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	walk, err := tasks.Create(ctx, caretasks.NewInput{
		PetID: "pet-1", PetName: "Buddy", Name: "Walk", Priority: "high", Duration: 30, Frequency: "weekly", DueDate: due,
	})
	require.NoError(t, err)

	_, next, err := tasks.Complete(ctx, walk.ID)
	require.NoError(t, err)
	require.NotNil(t, next)

	items, err := log.ListByPet(ctx, "pet-1", events.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// mismo occurred_at: la recurrencia se registró después y va primero
	assert.Equal(t, events.EventTypeTaskRecurred, items[0].Type)
	assert.Equal(t, next.ID, items[0].TaskID)
	assert.Equal(t, "Walk next due 2024-01-08", items[0].Title)

	assert.Equal(t, events.EventTypeTaskCompleted, items[1].Type)
	assert.Equal(t, walk.ID, items[1].TaskID)
	assert.Equal(t, events.ActorTypeSystem, items[1].Actor.Type)
	assert.Equal(t, events.SourceTasks, items[1].Source)

	onlyDone, err := log.ListByPet(ctx, "pet-1", events.ListFilter{Types: []events.EventType{events.EventTypeTaskCompleted}})
	require.NoError(t, err)
	assert.Len(t, onlyDone, 1)
}

func TestService_RecordsGeneratedSchedule(t *testing.T) {
	ctx := context.Background()
	log := events.NewService(memory.NewEventRepo(), nil)

	owner, err := owners.New("u1", "Jordan", 30)
	require.NoError(t, err)
	pet := pets.Pet{ID: "pet-1", Name: "Buddy", Species: pets.SpeciesDog}
	walk, err := caretasks.New(caretasks.NewInput{Name: "Walk", Priority: "high", Duration: 20})
	require.NoError(t, err)

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	sch := schedules.NewScheduler(schedules.Options{}).GenerateScheduleFor(day, owner, pet, []caretasks.CareTask{walk})
	require.NoError(t, log.ScheduleGenerated(ctx, sch))

	items, err := log.ListByPet(ctx, "pet-1", events.ListFilter{Query: "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, events.EventTypeScheduleGenerated, items[0].Type)
	assert.Equal(t, "Plan for 2024-03-05: 1 tasks, 20 min", items[0].Title)
	assert.Equal(t, sch.Explanation, items[0].Notes)
}

func TestService_CreateNoteAndVoid(t *testing.T) {
	ctx := context.Background()
	log := events.NewService(memory.NewEventRepo(), nil)
	actor := events.Actor{Type: events.ActorTypeOwnerUser, ID: "u1"}

	_, err := log.Create(ctx, "pet-1", actor, events.CreateInput{Type: events.EventTypeNote})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = log.Create(ctx, "pet-1", actor, events.CreateInput{Type: "VACCINE", Title: "x"})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	e, err := log.Create(ctx, "pet-1", actor, events.CreateInput{Type: events.EventTypeNote, Title: "Extra walk"})
	require.NoError(t, err)
	assert.Equal(t, events.EventStatusActive, e.Status)
	assert.Equal(t, events.SourceManual, e.Source)
	assert.False(t, e.OccurredAt.IsZero())

	voided, err := log.Void(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, events.EventStatusVoided, voided.Status)

	_, err = log.Void(ctx, "missing")
	assert.ErrorIs(t, err, events.ErrNotFound)
}
