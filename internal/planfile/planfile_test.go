package planfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
date = "2024-03-01"

[owner]
name = "Jordan"
time_available = 60

[[pets]]
name = "Buddy"
species = "dog"
age = 3

  [[pets.tasks]]
  name = "Walk"
  duration = 30
  priority = "high"
  time = "08:00"

  [[pets.tasks]]
  name = "Brush"
  duration = 40
  priority = "low"

  [[pets.tasks]]
  name = "Meds"
  duration = 5
  priority = "high"
  time = "7:30 AM"
  frequency = "daily"
  completed = true

[[pets]]
name = "Mochi"
species = "cat"

  [[pets.tasks]]
  name = "Feed"
  duration = 10
  priority = "medium"
  time = "08:15"
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	ctx := context.Background()

	f, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	require.Len(t, f.Pets, 2)

	plan, err := Build(ctx, f, time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), plan.Date)

	list, err := plan.Schedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	buddy := list[0]
	require.Len(t, buddy.Tasks, 1)
	assert.Equal(t, "Walk", buddy.Tasks[0].Name)
	require.Len(t, buddy.Excluded, 1)
	assert.Equal(t, "Brush", buddy.Excluded[0].Task.Name)
	assert.Equal(t, 30, buddy.TotalDuration)

	mochi := list[1]
	require.Len(t, mochi.Tasks, 1)
	assert.Equal(t, "Feed", mochi.Tasks[0].Name)

	// Walk 08:00-08:30 pisa Feed 08:15 aunque sean de mascotas distintas.
	conflicts, err := plan.Conflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0], "'Walk' [Buddy]")
	assert.Contains(t, conflicts[0], "'Feed' [Mochi]")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, `[owner]
name = "x"
`))
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = Load(writeFile(t, `[[pets]]
name = "Buddy"
species = "dog"
colour = "brown"
`))
	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.Contains(t, err.Error(), "pets.colour")

	_, err = Load(writeFile(t, `not toml at all =`))
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestBuild_InvalidEntries(t *testing.T) {
	ctx := context.Background()

	_, err := Build(ctx, &File{Date: "03/01/2024", Pets: []PetEntry{{Name: "a", Species: "dog"}}}, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = Build(ctx, &File{Pets: []PetEntry{{Name: "a", Species: "dragon"}}}, time.Now(), nil)
	assert.ErrorContains(t, err, "pets[0]")

	_, err = Build(ctx, &File{Pets: []PetEntry{{
		Name: "a", Species: "dog",
		Tasks: []TaskEntry{{Name: "Walk", Duration: 10, Priority: "high", Time: "25:99"}},
	}}}, time.Now(), nil)
	assert.ErrorContains(t, err, "pets[0].tasks[0]")
}
