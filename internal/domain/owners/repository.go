package owners

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("owner not found")

type Repository interface {
	// Save crea o reemplaza.
	Save(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
}
