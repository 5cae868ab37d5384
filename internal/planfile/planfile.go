// Package planfile carga un plan de cuidados desde TOML y lo arma en memoria
// con los mismos services que usa la API.
package planfile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-planner/internal/adapters/storage/memory"
	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"
	"pet-care-planner/internal/platform/logger"

	"github.com/BurntSushi/toml"
)

// LocalOwnerID identifica al único dueño de un archivo de plan.
const LocalOwnerID = "local"

var ErrInvalidPlan = errors.New("invalid plan file")

// File es el formato en disco:
//
//	date = "2024-03-01"
//	[owner]
//	name = "Jordan"
//	time_available = 90
//	[[pets]]
//	name = "Buddy"
//	species = "dog"
//	[[pets.tasks]]
//	name = "Morning walk"
//	duration = 30
//	priority = "high"
//	time = "08:00"
type File struct {
	Date          string     `toml:"date"`
	Chronological *bool      `toml:"chronological"`
	Owner         OwnerEntry `toml:"owner"`
	Pets          []PetEntry `toml:"pets"`
}

type OwnerEntry struct {
	Name          string         `toml:"name"`
	TimeAvailable *int           `toml:"time_available"`
	Preferences   map[string]any `toml:"preferences"`
}

type PetEntry struct {
	Name         string      `toml:"name"`
	Species      string      `toml:"species"`
	Breed        string      `toml:"breed"`
	Age          int         `toml:"age"`
	SpecialNeeds []string    `toml:"special_needs"`
	Tasks        []TaskEntry `toml:"tasks"`
}

type TaskEntry struct {
	Name      string `toml:"name"`
	Type      string `toml:"type"`
	Duration  int    `toml:"duration"`
	Priority  string `toml:"priority"`
	Time      string `toml:"time"`
	Notes     string `toml:"notes"`
	Frequency string `toml:"frequency"`
	Due       string `toml:"due"`
	Completed bool   `toml:"completed"`
}

// Load lee y decodifica path. Claves desconocidas son error para no
// ignorar en silencio un typo como "duraton".
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidPlan, strings.Join(keys, ", "))
	}
	if len(f.Pets) == 0 {
		return nil, fmt.Errorf("%w: at least one [[pets]] entry is required", ErrInvalidPlan)
	}
	return &f, nil
}

// PlanDate devuelve la fecha del plan o hoy si el archivo no la fija.
func (f *File) PlanDate(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(f.Date)
	if raw == "" {
		return caretasks.DateOf(now), nil
	}
	d, err := time.Parse(caretasks.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD (got %q)", ErrInvalidPlan, raw)
	}
	return d, nil
}

// Plan es el workspace en memoria armado desde un File.
type Plan struct {
	Date time.Time
	Pets []pets.Pet

	schedules *schedules.Service
}

// Build valida cada entrada pasando por los services del dominio.
func Build(ctx context.Context, f *File, now time.Time, log logger.Logger) (*Plan, error) {
	if log == nil {
		log = logger.Nop()
	}

	date, err := f.PlanDate(now)
	if err != nil {
		return nil, err
	}

	tasksSvc := caretasks.NewService(memory.NewCareTaskRepo(), log)
	petsSvc := pets.NewService(memory.NewPetRepo(), tasksSvc)
	ownersSvc := owners.NewService(memory.NewOwnerRepo(), owners.DefaultTimeAvailable)

	name := f.Owner.Name
	if _, err := ownersSvc.Upsert(ctx, LocalOwnerID, owners.UpsertInput{
		Name:          &name,
		TimeAvailable: f.Owner.TimeAvailable,
		Preferences:   f.Owner.Preferences,
	}); err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}

	chronological := true
	if f.Chronological != nil {
		chronological = *f.Chronological
	}
	scheduler := schedules.NewScheduler(schedules.Options{Chronological: chronological})

	plan := &Plan{
		Date:      date,
		schedules: schedules.NewService(ownersSvc, petsSvc, scheduler, log),
	}

	for i, pe := range f.Pets {
		p, err := petsSvc.Create(ctx, LocalOwnerID, pets.CreateInput{
			Name:         pe.Name,
			Species:      pe.Species,
			Breed:        pe.Breed,
			Age:          pe.Age,
			SpecialNeeds: pe.SpecialNeeds,
		})
		if err != nil {
			return nil, fmt.Errorf("pets[%d]: %w", i, err)
		}

		for j, te := range pe.Tasks {
			if err := addTask(ctx, tasksSvc, p, te, date); err != nil {
				return nil, fmt.Errorf("pets[%d].tasks[%d]: %w", i, j, err)
			}
		}
		plan.Pets = append(plan.Pets, p)
	}

	return plan, nil
}

func addTask(ctx context.Context, svc *caretasks.Service, p pets.Pet, te TaskEntry, planDate time.Time) error {
	due := planDate
	if raw := strings.TrimSpace(te.Due); raw != "" {
		d, err := time.Parse(caretasks.DateLayout, raw)
		if err != nil {
			return fmt.Errorf("%w: due must be YYYY-MM-DD (got %q)", ErrInvalidPlan, raw)
		}
		due = d
	}

	ct, err := svc.Create(ctx, caretasks.NewInput{
		PetID:         p.ID,
		PetName:       p.Name,
		Name:          te.Name,
		TaskType:      te.Type,
		Duration:      te.Duration,
		Priority:      te.Priority,
		PreferredTime: te.Time,
		Notes:         te.Notes,
		Frequency:     te.Frequency,
		DueDate:       due,
		StrictTime:    true,
	})
	if err != nil {
		return err
	}
	if te.Completed {
		if _, _, err := svc.Complete(ctx, ct.ID); err != nil {
			return err
		}
	}
	return nil
}

// Schedules genera el plan del día para cada mascota, en el orden del archivo.
func (p *Plan) Schedules(ctx context.Context) ([]*schedules.Schedule, error) {
	out := make([]*schedules.Schedule, 0, len(p.Pets))
	for _, pet := range p.Pets {
		sch, err := p.schedules.Generate(ctx, LocalOwnerID, pet.ID, p.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pet.Name, err)
		}
		out = append(out, sch)
	}
	return out, nil
}

// Conflicts revisa todas las tareas pendientes del dueño, entre mascotas.
func (p *Plan) Conflicts(ctx context.Context) ([]string, error) {
	return p.schedules.OwnerConflicts(ctx, LocalOwnerID)
}
