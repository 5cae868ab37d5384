package caretasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/platform/validation"
)

// CompletionObserver recibe cada tarea completada y su sucesora (nil si no recurre).
type CompletionObserver interface {
	TaskCompleted(ctx context.Context, done CareTask, next *CareTask) error
}

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time

	observers []CompletionObserver

	// Serializa altas y Complete: la misma tarea no puede generar dos
	// sucesoras y las altas de una mascota no compiten por el mismo orden.
	writeMu sync.Mutex
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"module": "caretasks"}),
		now:  time.Now,
	}
}

func (s *Service) OnComplete(o CompletionObserver) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

func (s *Service) Create(ctx context.Context, in NewInput) (CareTask, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return CareTask{}, validation.New("pet_id", "is required")
	}

	now := s.now()
	if in.DueDate.IsZero() {
		in.DueDate = now
	}

	t, err := New(in)
	if err != nil {
		return CareTask{}, err
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.repo.Create(ctx, t); err != nil {
		return CareTask{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareTask, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareTask{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]CareTask, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (CareTask, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return CareTask{}, err
	}
	if current.Completed {
		return CareTask{}, ErrAlreadyCompleted
	}

	updated, err := current.Apply(in)
	if err != nil {
		return CareTask{}, err
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		return CareTask{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Complete crea la siguiente ocurrencia (si recurre) y recién después marca
// la tarea como completada. Si falla el segundo paso se borra la sucesora,
// así un reintento encuentra la tarea pendiente y sin duplicados.
func (s *Service) Complete(ctx context.Context, id string) (CareTask, *CareTask, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return CareTask{}, nil, err
	}

	next, err := t.MarkComplete()
	if err != nil {
		return CareTask{}, nil, err
	}

	now := s.now()
	if next != nil {
		next.CreatedAt = now
		next.UpdatedAt = now
		if err := s.repo.Create(ctx, *next); err != nil {
			return CareTask{}, nil, fmt.Errorf("create next occurrence: %w", err)
		}
	}

	t.CompletedAt = &now
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		if next != nil {
			if derr := s.repo.Delete(ctx, next.ID); derr != nil {
				s.log.Error("rollback of next occurrence failed", map[string]any{
					"task_id": t.ID, "next_task_id": next.ID, "error": derr.Error(),
				})
				return CareTask{}, nil, errors.Join(err, derr)
			}
		}
		return CareTask{}, nil, err
	}

	fields := map[string]any{"task_id": t.ID, "pet_id": t.PetID, "task": t.Name}
	if next != nil {
		fields["next_task_id"] = next.ID
		fields["next_due"] = next.DueDate.Format(DateLayout)
	}
	s.log.Info("task completed", fields)

	for _, o := range s.observers {
		if err := o.TaskCompleted(ctx, t, next); err != nil {
			// el historial es secundario: la tarea ya quedó completada
			s.log.Warn("completion observer failed", map[string]any{"task_id": t.ID, "error": err.Error()})
		}
	}

	return t, next, nil
}

// SyncPetName actualiza la copia del nombre de la mascota en sus tareas.
func (s *Service) SyncPetName(ctx context.Context, petID, name string) error {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return err
	}
	for _, t := range items {
		if t.PetName == name {
			continue
		}
		t.PetName = name
		if err := s.repo.Update(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
