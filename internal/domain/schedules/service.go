package schedules

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/platform/validation"
)

var ErrForbidden = errors.New("forbidden")

type OwnerSource interface {
	Get(ctx context.Context, userID string) (owners.Owner, error)
}

type PetSource interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
	WithTasks(ctx context.Context, p pets.Pet) (pets.Pet, error)
}

// GenerationObserver recibe cada plan generado (lo usa el registro de actividad).
type GenerationObserver interface {
	ScheduleGenerated(ctx context.Context, s *Schedule) error
}

type Service struct {
	owners    OwnerSource
	pets      PetSource
	scheduler *Scheduler
	log       logger.Logger
	now       func() time.Time

	observers []GenerationObserver
}

func NewService(owners OwnerSource, pets PetSource, scheduler *Scheduler, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if scheduler == nil {
		scheduler = NewScheduler(Options{})
	}
	return &Service{
		owners:    owners,
		pets:      pets,
		scheduler: scheduler,
		log:       log.With(map[string]any{"module": "schedules"}),
		now:       time.Now,
	}
}

func (s *Service) OnGenerate(o GenerationObserver) {
	s.observers = append(s.observers, o)
}

// Generate arma el plan de una mascota para date con las tareas pendientes que
// vencen ese día o antes. date zero = hoy.
func (s *Service) Generate(ctx context.Context, userID, petID string, date time.Time) (*Schedule, error) {
	if date.IsZero() {
		date = s.now()
	}
	date = caretasks.DateOf(date)

	owner, err := s.owners.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	pet, err := s.ownedPetWithTasks(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	due := make([]caretasks.CareTask, 0, len(pet.Tasks))
	for _, t := range pet.Tasks {
		if !t.Completed && t.IsDue(date) {
			due = append(due, t)
		}
	}

	sch := s.scheduler.GenerateScheduleFor(date, owner, pet, due)

	fields := map[string]any{
		"pet_id":         pet.ID,
		"date":           date.Format(caretasks.DateLayout),
		"selected":       len(sch.Tasks),
		"excluded":       len(sch.Excluded),
		"total_duration": sch.TotalDuration,
	}
	s.log.Info("schedule generated", fields)
	if len(sch.Conflicts) > 0 {
		s.log.Warn("schedule has conflicts", map[string]any{
			"pet_id":    pet.ID,
			"conflicts": len(sch.Conflicts),
		})
	}

	for _, o := range s.observers {
		if err := o.ScheduleGenerated(ctx, sch); err != nil {
			s.log.Warn("schedule observer failed", map[string]any{"pet_id": pet.ID, "error": err.Error()})
		}
	}
	return sch, nil
}

// PetConflicts revisa todas las tareas pendientes de la mascota.
func (s *Service) PetConflicts(ctx context.Context, userID, petID string) ([]string, error) {
	pet, err := s.ownedPetWithTasks(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	return DetectConflicts(FilterByCompletion(pet.Tasks, false)), nil
}

type SortOrder string

const (
	SortInsertion SortOrder = ""
	SortPriority  SortOrder = "priority"
	SortTime      SortOrder = "time"
)

func ParseSortOrder(raw string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(raw))); o {
	case SortInsertion, SortPriority, SortTime:
		return o, nil
	default:
		return "", validation.New("sort", "must be priority or time (got %q)", raw)
	}
}

// Agenda lista las tareas de la mascota ordenadas y opcionalmente filtradas por estado.
func (s *Service) Agenda(ctx context.Context, userID, petID string, order SortOrder, completed *bool) ([]caretasks.CareTask, error) {
	pet, err := s.ownedPetWithTasks(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	items := pet.Tasks
	if completed != nil {
		items = FilterByCompletion(items, *completed)
	}
	switch order {
	case SortPriority:
		items = SortByPriority(items)
	case SortTime:
		items = SortByTime(items)
	}
	return items, nil
}

// OwnerTasks junta las tareas de todas las mascotas del dueño (en orden de mascota)
// y aplica los filtros que vengan.
func (s *Service) OwnerTasks(ctx context.Context, userID string, completed *bool, petName string) ([]caretasks.CareTask, error) {
	all, err := s.ownerTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if completed != nil {
		all = FilterByCompletion(all, *completed)
	}
	if strings.TrimSpace(petName) != "" {
		all = FilterByPetName(all, petName)
	}
	return all, nil
}

// OwnerConflicts detecta choques entre tareas pendientes de distintas mascotas:
// el dueño es uno solo.
func (s *Service) OwnerConflicts(ctx context.Context, userID string) ([]string, error) {
	all, err := s.ownerTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DetectConflicts(FilterByCompletion(all, false)), nil
}

func (s *Service) ownerTasks(ctx context.Context, userID string) ([]caretasks.CareTask, error) {
	list, err := s.pets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]caretasks.CareTask, 0)
	for _, p := range list {
		full, err := s.pets.WithTasks(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, full.Tasks...)
	}
	return out, nil
}

func (s *Service) ownedPetWithTasks(ctx context.Context, userID, petID string) (pets.Pet, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return pets.Pet{}, err
	}
	if p.OwnerUserID != userID {
		return pets.Pet{}, ErrForbidden
	}
	return s.pets.WithTasks(ctx, p)
}
