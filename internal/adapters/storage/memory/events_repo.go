package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"pet-care-planner/internal/domain/events"
)

// eventRepo indexa por mascota: el registro solo se consulta de a una.
type eventRepo struct {
	mu    sync.RWMutex
	byID  map[string]events.PetEvent
	byPet map[string][]string // ids en orden de registro
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID:  make(map[string]events.PetEvent),
		byPet: make(map[string][]string),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.PetEvent) error {
	if e.ID == "" {
		return errors.New("event id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byID[e.ID]; dup {
		return errors.New("event already exists")
	}
	r.byID[e.ID] = e
	r.byPet[e.PetID] = append(r.byPet[e.PetID], e.ID)
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.PetEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byID[id]; ok {
		return e, nil
	}
	return events.PetEvent{}, events.ErrNotFound
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.PetEvent, error) {
	r.mu.RLock()
	ids := r.byPet[petID]
	out := make([]events.PetEvent, 0, len(ids))
	for _, id := range ids {
		if e := r.byID[id]; filter.Matches(e) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	// mismo orden que sqlstore: occurred_at desc, recorded_at desc; empate final
	// por orden de registro inverso
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b events.PetEvent) int {
		if c := b.OccurredAt.Compare(a.OccurredAt); c != 0 {
			return c
		}
		return b.RecordedAt.Compare(a.RecordedAt)
	})

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *eventRepo) Void(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	e.Status = events.EventStatusVoided
	r.byID[id] = e
	return nil
}
