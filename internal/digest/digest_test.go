package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwners []owners.Owner

func (f fakeOwners) List(ctx context.Context) ([]owners.Owner, error) { return f, nil }

type fakePets map[string][]pets.Pet

func (f fakePets) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return f[ownerUserID], nil
}

type fakePlanner struct {
	calls []string
	dates []time.Time
}

func (f *fakePlanner) Generate(ctx context.Context, userID, petID string, date time.Time) (*schedules.Schedule, error) {
	f.calls = append(f.calls, userID+"/"+petID)
	f.dates = append(f.dates, date)
	if petID == "broken" {
		return nil, errors.New("boom")
	}
	o, _ := owners.New(userID, "", 60)
	walk, _ := caretasks.New(caretasks.NewInput{Name: "Walk", Priority: "high", Duration: 30, PreferredTime: "08:00"})
	feed, _ := caretasks.New(caretasks.NewInput{Name: "Feed", Priority: "high", Duration: 10, PreferredTime: "08:10"})
	return schedules.NewScheduler(schedules.Options{}).GenerateScheduleFor(date, o, pets.Pet{ID: petID}, []caretasks.CareTask{walk, feed}), nil
}

func TestRunOnce(t *testing.T) {
	u1, err := owners.New("u1", "Jordan", 60)
	require.NoError(t, err)
	u2, err := owners.New("u2", "Sam", 60)
	require.NoError(t, err)

	planner := &fakePlanner{}
	job, err := New(Config{Spec: "0 6 * * *", Timezone: "America/Argentina/Buenos_Aires"},
		planner,
		fakeOwners{u1, u2},
		fakePets{
			"u1": {{ID: "buddy", Name: "Buddy"}, {ID: "broken", Name: "Broken"}},
			"u2": {{ID: "milo", Name: "Milo"}},
		},
		nil,
	)
	require.NoError(t, err)
	// 01:30 UTC del 2 de marzo es todavía 1 de marzo en Buenos Aires
	job.now = func() time.Time { return time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC) }

	rep, err := job.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"u1/buddy", "u1/broken", "u2/milo"}, planner.calls)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), planner.dates[0])
	assert.Equal(t, Report{Owners: 2, Pets: 3, Scheduled: 4, Excluded: 0, Conflicts: 2, Failures: 1}, rep)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Spec: "not a cron"}, &fakePlanner{}, fakeOwners{}, fakePets{}, nil)
	assert.Error(t, err)

	_, err = New(Config{Spec: "@daily", Timezone: "Nowhere/City"}, &fakePlanner{}, fakeOwners{}, fakePets{}, nil)
	assert.Error(t, err)

	job, err := New(Config{Spec: "0 6 * * *"}, &fakePlanner{}, fakeOwners{}, fakePets{}, nil)
	require.NoError(t, err)
	require.NoError(t, job.Start(context.Background()))
	require.NoError(t, job.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
	job.Stop(ctx)
}
