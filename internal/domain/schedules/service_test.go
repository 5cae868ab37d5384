package schedules_test

import (
	"context"
	"testing"
	"time"

	"pet-care-planner/internal/adapters/storage/memory"
	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	owners *owners.Service
	pets   *pets.Service
	tasks  *caretasks.Service
	svc    *schedules.Service
}

type capture struct{ got []*schedules.Schedule }

func (c *capture) ScheduleGenerated(ctx context.Context, s *schedules.Schedule) error {
	c.got = append(c.got, s)
	return nil
}

func newFixture() fixture {
	tasks := caretasks.NewService(memory.NewCareTaskRepo(), nil)
	petsSvc := pets.NewService(memory.NewPetRepo(), tasks)
	ownersSvc := owners.NewService(memory.NewOwnerRepo(), owners.DefaultTimeAvailable)
	svc := schedules.NewService(ownersSvc, petsSvc, schedules.NewScheduler(schedules.Options{}), nil)
	return fixture{owners: ownersSvc, pets: petsSvc, tasks: tasks, svc: svc}
}

func (f fixture) addTask(t *testing.T, pet pets.Pet, in caretasks.NewInput) caretasks.CareTask {
	t.Helper()
	in.PetID = pet.ID
	in.PetName = pet.Name
	ct, err := f.tasks.Create(context.Background(), in)
	require.NoError(t, err)
	return ct
}

func TestService_Generate_OnlyPendingDueTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := &capture{}
	f.svc.OnGenerate(c)

	budget := 60
	_, err := f.owners.Upsert(ctx, "u1", owners.UpsertInput{TimeAvailable: &budget})
	require.NoError(t, err)

	buddy, err := f.pets.Create(ctx, "u1", pets.CreateInput{Name: "Buddy", Species: "dog"})
	require.NoError(t, err)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.addTask(t, buddy, caretasks.NewInput{Name: "A", Priority: "high", Duration: 30, DueDate: day})
	f.addTask(t, buddy, caretasks.NewInput{Name: "B", Priority: "high", Duration: 40, DueDate: day})
	f.addTask(t, buddy, caretasks.NewInput{Name: "C", Priority: "low", Duration: 20, DueDate: day.AddDate(0, 0, -3)})
	f.addTask(t, buddy, caretasks.NewInput{Name: "Tomorrow", Priority: "high", Duration: 5, DueDate: day.AddDate(0, 0, 1)})
	done := f.addTask(t, buddy, caretasks.NewInput{Name: "Done", Priority: "high", Duration: 5, DueDate: day})
	_, _, err = f.tasks.Complete(ctx, done.ID)
	require.NoError(t, err)

	sch, err := f.svc.Generate(ctx, "u1", buddy.ID, day)
	require.NoError(t, err)

	got := make([]string, 0)
	for _, ct := range sch.Tasks {
		got = append(got, ct.Name)
	}
	assert.Equal(t, []string{"A", "C"}, got)
	assert.Equal(t, 50, sch.TotalDuration)
	require.Len(t, sch.Excluded, 1)
	assert.Equal(t, "B", sch.Excluded[0].Task.Name)
	require.Len(t, c.got, 1)
	assert.Equal(t, buddy.ID, c.got[0].Pet.ID)
}

func TestService_Generate_Ownership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	buddy, err := f.pets.Create(ctx, "u1", pets.CreateInput{Name: "Buddy", Species: "dog"})
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, "intruder", buddy.ID, time.Time{})
	assert.ErrorIs(t, err, schedules.ErrForbidden)

	_, err = f.svc.Generate(ctx, "u1", "missing", time.Time{})
	assert.ErrorIs(t, err, pets.ErrNotFound)

	// sin configurar /me se usa el presupuesto por defecto
	sch, err := f.svc.Generate(ctx, "u1", buddy.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, owners.DefaultTimeAvailable, sch.Owner.AvailableTime())
	assert.Empty(t, sch.Tasks)
}

func TestService_OwnerViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	buddy, err := f.pets.Create(ctx, "u1", pets.CreateInput{Name: "Buddy", Species: "dog"})
	require.NoError(t, err)
	milo, err := f.pets.Create(ctx, "u1", pets.CreateInput{Name: "Milo", Species: "cat"})
	require.NoError(t, err)
	other, err := f.pets.Create(ctx, "u2", pets.CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	walk := f.addTask(t, buddy, caretasks.NewInput{Name: "Walk", Priority: "high", Duration: 30, PreferredTime: "08:00", Frequency: "daily"})
	f.addTask(t, milo, caretasks.NewInput{Name: "Feed", Priority: "medium", Duration: 10, PreferredTime: "8:15 AM"})
	f.addTask(t, milo, caretasks.NewInput{Name: "Litter", Priority: "low", Duration: 10})
	f.addTask(t, other, caretasks.NewInput{Name: "Walk Rex", Priority: "high", Duration: 30, PreferredTime: "08:00"})

	conflicts, err := f.svc.OwnerConflicts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "'Walk' [Buddy] (08:00, 30 min) overlaps 'Feed' [Milo] (8:15 AM, 10 min)", conflicts[0])

	petConflicts, err := f.svc.PetConflicts(ctx, "u1", milo.ID)
	require.NoError(t, err)
	assert.Empty(t, petConflicts)

	all, err := f.svc.OwnerTasks(ctx, "u1", nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	miloOnly, err := f.svc.OwnerTasks(ctx, "u1", nil, "milo")
	require.NoError(t, err)
	assert.Len(t, miloOnly, 2)

	_, _, err = f.tasks.Complete(ctx, walk.ID)
	require.NoError(t, err)

	done := true
	completed, err := f.svc.OwnerTasks(ctx, "u1", &done, "")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, walk.ID, completed[0].ID)

	// la sucesora de Walk sigue chocando con Feed
	conflicts, err = f.svc.OwnerConflicts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
}

func TestService_Agenda(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	buddy, err := f.pets.Create(ctx, "u1", pets.CreateInput{Name: "Buddy", Species: "dog"})
	require.NoError(t, err)
	f.addTask(t, buddy, caretasks.NewInput{Name: "Brush", Priority: "low", Duration: 10, PreferredTime: "7:00 PM"})
	f.addTask(t, buddy, caretasks.NewInput{Name: "Walk", Priority: "high", Duration: 30, PreferredTime: "08:00"})
	f.addTask(t, buddy, caretasks.NewInput{Name: "Meds", Priority: "high", Duration: 5})

	list := func(order schedules.SortOrder) []string {
		items, err := f.svc.Agenda(ctx, "u1", buddy.ID, order, nil)
		require.NoError(t, err)
		out := make([]string, 0, len(items))
		for _, ct := range items {
			out = append(out, ct.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Brush", "Walk", "Meds"}, list(schedules.SortInsertion))
	assert.Equal(t, []string{"Meds", "Walk", "Brush"}, list(schedules.SortPriority))
	assert.Equal(t, []string{"Walk", "Brush", "Meds"}, list(schedules.SortTime))

	_, err = schedules.ParseSortOrder("alphabetical")
	assert.Error(t, err)
}
