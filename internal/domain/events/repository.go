package events

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("event not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Repository interface {
	Create(ctx context.Context, e PetEvent) error
	GetByID(ctx context.Context, id string) (PetEvent, error)
	// ListByPet devuelve lo más reciente primero (occurred_at desc, recorded_at desc).
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]PetEvent, error)
	Void(ctx context.Context, id string) error
}

// ListFilter: campos vacíos no filtran. From/To son inclusivos.
type ListFilter struct {
	Types      []EventType
	TaskID     string // historial de una tarea (y sus sucesoras no, tienen otro id)
	From       *time.Time
	To         *time.Time
	Query      string // substring sin mayúsculas sobre title + notes
	ActiveOnly bool
	Limit      int
}

func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Matches aplica el filtro en memoria. sqlstore traduce los mismos campos a SQL.
func (f ListFilter) Matches(e PetEvent) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if t == e.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.TaskID != "" && e.TaskID != f.TaskID {
		return false
	}
	if f.From != nil && e.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.OccurredAt.After(*f.To) {
		return false
	}
	if f.ActiveOnly && e.Status != EventStatusActive {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(e.Title+" "+e.Notes), q) {
			return false
		}
	}
	return true
}
