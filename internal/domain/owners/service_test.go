package owners

import (
	"context"
	"testing"
	"time"

	"pet-care-planner/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Owner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Owner{}}
}

func (r *testRepo) Save(ctx context.Context, o Owner) error {
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) List(ctx context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func TestOwner_SetAvailableTime(t *testing.T) {
	o, err := New("u1", "Alice", 60)
	require.NoError(t, err)
	assert.Equal(t, 60, o.AvailableTime())

	err = o.SetAvailableTime(-1)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Equal(t, 60, o.AvailableTime())

	require.NoError(t, o.SetAvailableTime(0))
	assert.Equal(t, 0, o.AvailableTime())

	_, err = New("u1", "Alice", -30)
	assert.Error(t, err)
}

func TestOwner_HasTimeFor(t *testing.T) {
	o, _ := New("u1", "Alice", 30)
	assert.True(t, o.HasTimeFor(30))
	assert.False(t, o.HasTimeFor(31))
}

func TestOwner_UpdatePreferences(t *testing.T) {
	o, _ := New("u1", "Alice", 30)
	o.UpdatePreferences(map[string]any{"chronological": false, "walks": "morning"})
	o.UpdatePreferences(map[string]any{"walks": nil})

	assert.Equal(t, map[string]any{"chronological": false}, o.Preferences)
	assert.False(t, o.PreferenceBool("chronological", true))
	assert.True(t, o.PreferenceBool("missing", true))
}

func TestService_Get_DefaultWhenMissing(t *testing.T) {
	svc := NewService(newTestRepo(), 120)

	o, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", o.ID)
	assert.Equal(t, 120, o.AvailableTime())
	assert.True(t, o.CreatedAt.IsZero())
}

func TestService_Upsert(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, DefaultTimeAvailable)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	name := " Alice "
	minutes := 90
	o, err := svc.Upsert(ctx, "u1", UpsertInput{Name: &name, TimeAvailable: &minutes, Preferences: map[string]any{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, "Alice", o.Name)
	assert.Equal(t, 90, o.AvailableTime())
	assert.Equal(t, now, o.CreatedAt)

	// segundo upsert solo cambia lo enviado
	neg := -5
	_, err = svc.Upsert(ctx, "u1", UpsertInput{TimeAvailable: &neg})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	stored, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 90, stored.AvailableTime())
	assert.Equal(t, "v", stored.Preferences["k"])
}

func TestService_Get_RequiresID(t *testing.T) {
	svc := NewService(newTestRepo(), DefaultTimeAvailable)
	_, err := svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, validation.ErrInvalid)
}
