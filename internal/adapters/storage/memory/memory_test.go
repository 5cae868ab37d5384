package memory

import (
	"context"
	"testing"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/events"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()

	needs := []string{"heat lamp"}
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Kiwi", SpecialNeeds: needs}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p2", OwnerUserID: "u2", Name: "Rex"}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p3", OwnerUserID: "u1", Name: "Mochi"}))
	assert.Error(t, repo.Create(ctx, pets.Pet{ID: "p1"}))

	needs[0] = "mutated"
	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"heat lamp"}, got.SpecialNeeds)

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Kiwi", list[0].Name)
	assert.Equal(t, "Mochi", list[1].Name)

	// el dueño no se puede reasignar por Update
	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", OwnerUserID: "u2", Name: "Kiwi II"}))
	got, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.OwnerUserID)
	assert.Equal(t, "Kiwi II", got.Name)

	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "nope"}), pets.ErrNotFound)
	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestCareTaskRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewCareTaskRepo()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, caretasks.CareTask{ID: id, PetID: "p1", Name: id}))
	}
	require.NoError(t, repo.Create(ctx, caretasks.CareTask{ID: "x", PetID: "p2", Name: "x"}))

	require.NoError(t, repo.Delete(ctx, "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "b"), caretasks.ErrNotFound)

	list, err := repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	done := list[0]
	done.Completed = true
	done.CompletedAt = &at
	require.NoError(t, repo.Update(ctx, done))

	at = at.Add(time.Hour)
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, 9, got.CompletedAt.Hour())
}

func TestOwnerRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewOwnerRepo()

	o, err := owners.New("u1", "Jordan", 60)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))

	o2, err := owners.New("u2", "Sam", 30)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o2))

	require.NoError(t, o.SetAvailableTime(90))
	require.NoError(t, repo.Save(ctx, o))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u1", list[0].ID)
	assert.Equal(t, 90, list[0].AvailableTime())

	_, err = repo.GetByID(ctx, "u3")
	assert.ErrorIs(t, err, owners.ErrNotFound)
}

func TestEventRepo_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	add := func(id string, typ events.EventType, occurred time.Time) {
		t.Helper()
		require.NoError(t, repo.Create(ctx, events.PetEvent{
			ID: id, PetID: "p1", Type: typ, OccurredAt: occurred, RecordedAt: base,
			Title: id, Status: events.EventStatusActive,
		}))
	}
	add("old", events.EventTypeNote, base.Add(-time.Hour))
	add("done", events.EventTypeTaskCompleted, base)
	add("next", events.EventTypeTaskRecurred, base)
	add("plan", events.EventTypeScheduleGenerated, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, events.PetEvent{ID: "other", PetID: "p2", OccurredAt: base}))

	ids := func(list []events.PetEvent) []string {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.ID)
		}
		return out
	}

	list, err := repo.ListByPet(ctx, "p1", events.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"plan", "next", "done", "old"}, ids(list))

	list, err = repo.ListByPet(ctx, "p1", events.ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"plan", "next"}, ids(list))

	require.NoError(t, repo.Void(ctx, "old"))
	list, err = repo.ListByPet(ctx, "p1", events.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"plan", "next", "done"}, ids(list))

	assert.ErrorIs(t, repo.Void(ctx, "missing"), events.ErrNotFound)
}
