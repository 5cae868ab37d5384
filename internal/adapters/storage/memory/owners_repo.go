package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-care-planner/internal/domain/owners"
)

type ownerRepo struct {
	mu    sync.RWMutex
	byID  map[string]owners.Owner
	order []string
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID: make(map[string]owners.Owner),
	}
}

// Save hace upsert.
func (r *ownerRepo) Save(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.byID[o.ID]; !exists {
		r.order = append(r.order, o.ID)
	}
	r.byID[o.ID] = o.Clone()
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}
