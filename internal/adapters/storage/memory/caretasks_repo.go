package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"pet-care-planner/internal/domain/caretasks"
)

type careTaskRepo struct {
	mu    sync.RWMutex
	byID  map[string]caretasks.CareTask
	byPet map[string][]string // orden de inserción por mascota
}

func NewCareTaskRepo() caretasks.Repository {
	return &careTaskRepo{
		byID:  make(map[string]caretasks.CareTask),
		byPet: make(map[string][]string),
	}
}

func (r *careTaskRepo) Create(ctx context.Context, t caretasks.CareTask) error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byID[t.ID]; dup {
		return errors.New("task already exists")
	}
	r.byID[t.ID] = cloneTask(t)
	r.byPet[t.PetID] = append(r.byPet[t.PetID], t.ID)
	return nil
}

// Update no mueve la tarea de mascota.
func (r *careTaskRepo) Update(ctx context.Context, t caretasks.CareTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[t.ID]
	if !ok {
		return caretasks.ErrNotFound
	}
	t.PetID = cur.PetID
	r.byID[t.ID] = cloneTask(t)
	return nil
}

func (r *careTaskRepo) GetByID(ctx context.Context, id string) (caretasks.CareTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.byID[id]; ok {
		return cloneTask(t), nil
	}
	return caretasks.CareTask{}, caretasks.ErrNotFound
}

func (r *careTaskRepo) ListByPet(ctx context.Context, petID string) ([]caretasks.CareTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byPet[petID]
	out := make([]caretasks.CareTask, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneTask(r.byID[id]))
	}
	return out, nil
}

func (r *careTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return caretasks.ErrNotFound
	}
	delete(r.byID, id)
	r.byPet[t.PetID] = slices.DeleteFunc(r.byPet[t.PetID], func(v string) bool { return v == id })
	return nil
}

// CompletedAt es puntero: se copia para que nadie edite el valor guardado.
func cloneTask(t caretasks.CareTask) caretasks.CareTask {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}
