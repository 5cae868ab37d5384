package caretasks

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("task not found")

type Repository interface {
	Create(ctx context.Context, t CareTask) error
	Update(ctx context.Context, t CareTask) error
	GetByID(ctx context.Context, id string) (CareTask, error)
	// ListByPet respeta el orden de inserción.
	ListByPet(ctx context.Context, petID string) ([]CareTask, error)
	Delete(ctx context.Context, id string) error
}
