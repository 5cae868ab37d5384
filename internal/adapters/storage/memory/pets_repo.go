package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"pet-care-planner/internal/domain/pets"
)

type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	byOwner map[string][]string // ids en orden de alta
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		byOwner: make(map[string][]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byID[p.ID]; dup {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = detach(p)
	r.byOwner[p.OwnerUserID] = append(r.byOwner[p.OwnerUserID], p.ID)
	return nil
}

// Update reemplaza el perfil. El dueño no cambia nunca.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[p.ID]
	if !ok {
		return pets.ErrNotFound
	}
	p.OwnerUserID = cur.OwnerUserID
	p.CreatedAt = cur.CreatedAt
	r.byID[p.ID] = detach(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byID[id]; ok {
		return detach(p), nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[ownerUserID]
	out := make([]pets.Pet, 0, len(ids))
	for _, id := range ids {
		out = append(out, detach(r.byID[id]))
	}
	return out, nil
}

// detach: las tareas viven en su propio repo y special_needs no se comparte
// con quien llamó.
func detach(p pets.Pet) pets.Pet {
	p.Tasks = nil
	p.SpecialNeeds = slices.Clone(p.SpecialNeeds)
	return p
}
