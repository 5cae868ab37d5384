package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/schedules"
	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/platform/validation"

	"github.com/google/uuid"
)

var systemActor = Actor{Type: ActorTypeSystem, ID: "planner"}

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"module": "events"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	Type       EventType
	TaskID     string
	OccurredAt time.Time // zero = ahora
	Title      string
	Notes      string
	Source     Source
}

func (s *Service) Create(ctx context.Context, petID string, actor Actor, in CreateInput) (PetEvent, error) {
	if strings.TrimSpace(petID) == "" {
		return PetEvent{}, validation.New("pet_id", "is required")
	}
	if !in.Type.Valid() {
		return PetEvent{}, validation.New("type", "unknown event type %q", in.Type)
	}
	if actor.Type == "" || strings.TrimSpace(actor.ID) == "" {
		return PetEvent{}, validation.New("actor", "is required")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return PetEvent{}, validation.New("title", "is required")
	}

	now := s.now()
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	src := in.Source
	if src == "" {
		src = SourceManual
	}

	e := PetEvent{
		ID:         uuid.NewString(),
		PetID:      petID,
		TaskID:     strings.TrimSpace(in.TaskID),
		Type:       in.Type,
		OccurredAt: occurred,
		RecordedAt: now,
		Title:      title,
		Notes:      strings.TrimSpace(in.Notes),
		Actor:      actor,
		Source:     src,
		Status:     EventStatusActive,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return PetEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (PetEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetEvent{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]PetEvent, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// Void marca el evento como voided (no se borra).
func (s *Service) Void(ctx context.Context, id string) (PetEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetEvent{}, ErrNotFound
	}
	if err := s.repo.Void(ctx, id); err != nil {
		return PetEvent{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// TaskCompleted implementa caretasks.CompletionObserver.
func (s *Service) TaskCompleted(ctx context.Context, done caretasks.CareTask, next *caretasks.CareTask) error {
	at := s.now()
	if done.CompletedAt != nil {
		at = *done.CompletedAt
	}

	if _, err := s.Create(ctx, done.PetID, systemActor, CreateInput{
		Type:       EventTypeTaskCompleted,
		TaskID:     done.ID,
		OccurredAt: at,
		Title:      "Completed " + done.Name,
		Notes:      done.String(),
		Source:     SourceTasks,
	}); err != nil {
		return err
	}

	if next == nil {
		return nil
	}
	_, err := s.Create(ctx, next.PetID, systemActor, CreateInput{
		Type:       EventTypeTaskRecurred,
		TaskID:     next.ID,
		OccurredAt: at,
		Title:      fmt.Sprintf("%s next due %s", next.Name, next.DueDate.Format(caretasks.DateLayout)),
		Notes:      fmt.Sprintf("%s recurrence of task %s", next.Frequency, done.ID),
		Source:     SourceTasks,
	})
	return err
}

// ScheduleGenerated implementa schedules.GenerationObserver.
func (s *Service) ScheduleGenerated(ctx context.Context, sch *schedules.Schedule) error {
	_, err := s.Create(ctx, sch.Pet.ID, systemActor, CreateInput{
		Type: EventTypeScheduleGenerated,
		Title: fmt.Sprintf("Plan for %s: %d tasks, %d min",
			sch.Date.Format(caretasks.DateLayout), len(sch.Tasks), sch.TotalDuration),
		Notes:  sch.Explanation,
		Source: SourceScheduler,
	})
	return err
}
