package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-planner/internal/platform/validation"
)

type Service struct {
	repo Repository
	now  func() time.Time

	defaultTime int
}

func NewService(repo Repository, defaultTimeAvailable int) *Service {
	if defaultTimeAvailable < 0 {
		defaultTimeAvailable = DefaultTimeAvailable
	}
	return &Service{
		repo:        repo,
		now:         time.Now,
		defaultTime: defaultTimeAvailable,
	}
}

type UpsertInput struct {
	Name          *string
	TimeAvailable *int
	Preferences   map[string]any
}

// Get devuelve el owner o uno por defecto (sin persistir) si todavía no configuró nada.
func (s *Service) Get(ctx context.Context, userID string) (Owner, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Owner{}, validation.New("owner_id", "is required")
	}

	o, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return New(userID, "", s.defaultTime)
	}
	if err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (Owner, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Owner{}, err
	}
	o := current.Clone()

	if in.Name != nil {
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.TimeAvailable != nil {
		if err := o.SetAvailableTime(*in.TimeAvailable); err != nil {
			return Owner{}, err
		}
	}
	if in.Preferences != nil {
		o.UpdatePreferences(in.Preferences)
	}

	now := s.now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	if err := s.repo.Save(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}
