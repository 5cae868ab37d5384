package pets

import (
	"context"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/platform/validation"

	"github.com/google/uuid"
)

// TaskStore es lo que pets necesita de caretasks (lo implementa *caretasks.Service).
type TaskStore interface {
	ListByPet(ctx context.Context, petID string) ([]caretasks.CareTask, error)
	SyncPetName(ctx context.Context, petID, name string) error
}

type Service struct {
	repo  Repository
	tasks TaskStore
	now   func() time.Time
}

func NewService(repo Repository, tasks TaskStore) *Service {
	return &Service{
		repo:  repo,
		tasks: tasks,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name         string
	Species      string
	Breed        string
	Age          int
	SpecialNeeds []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, validation.New("owner_user_id", "is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, validation.New("name", "is required")
	}
	species, err := parseSpecies(in.Species)
	if err != nil {
		return Pet{}, err
	}
	if in.Age < 0 {
		return Pet{}, validation.New("age", "must be zero or more (got %d)", in.Age)
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         name,
		Species:      species,
		Breed:        strings.TrimSpace(in.Breed),
		Age:          in.Age,
		SpecialNeeds: cleanList(in.SpecialNeeds),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// WithTasks devuelve la mascota con sus tareas cargadas en orden de inserción.
func (s *Service) WithTasks(ctx context.Context, p Pet) (Pet, error) {
	p.Tasks = nil
	if s.tasks == nil {
		return p, nil
	}
	items, err := s.tasks.ListByPet(ctx, p.ID)
	if err != nil {
		return Pet{}, err
	}
	for _, t := range items {
		p.AddTask(t)
	}
	return p, nil
}

// UpdateProfileInput: punteros para PATCH real, nil = no tocar.
type UpdateProfileInput struct {
	Name         *string
	Species      *string
	Breed        *string
	Age          *int
	SpecialNeeds *[]string
}

func (s *Service) UpdateProfile(ctx context.Context, petID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	oldName := p.Name

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, validation.New("name", "is required")
		}
		p.Name = name
	}
	if in.Species != nil {
		sp, err := parseSpecies(*in.Species)
		if err != nil {
			return Pet{}, err
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, validation.New("age", "must be zero or more (got %d)", *in.Age)
		}
		p.Age = *in.Age
	}
	if in.SpecialNeeds != nil {
		p.SpecialNeeds = cleanList(*in.SpecialNeeds)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}

	// pet_name en las tareas es una copia: mantenerla al día
	if p.Name != oldName && s.tasks != nil {
		if err := s.tasks.SyncPetName(ctx, p.ID, p.Name); err != nil {
			return Pet{}, err
		}
	}
	return p, nil
}

func parseSpecies(raw string) (Species, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", validation.New("species", "is required")
	}
	sp := Species(v)
	if !sp.Valid() {
		return "", validation.New("species", "must be one of dog, cat, rabbit, bird, other (got %q)", raw)
	}
	return sp, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
