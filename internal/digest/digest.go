// Package digest genera cada mañana el plan del día de cada mascota y lo deja
// en el log (y, vía schedules, en el registro de actividad).
package digest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"
	"pet-care-planner/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

type Planner interface {
	Generate(ctx context.Context, userID, petID string, date time.Time) (*schedules.Schedule, error)
}

type OwnerLister interface {
	List(ctx context.Context) ([]owners.Owner, error)
}

type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type Config struct {
	Spec     string // cron de 5 campos, p.ej. "0 6 * * *"
	Timezone string
}

// Report resume una corrida.
type Report struct {
	Owners    int
	Pets      int
	Scheduled int // tareas elegidas en total
	Excluded  int
	Conflicts int
	Failures  int
}

type Job struct {
	planner Planner
	owners  OwnerLister
	pets    PetLister
	log     logger.Logger

	spec   string
	loc    *time.Location
	parser cron.Parser
	now    func() time.Time

	mu sync.Mutex
	c  *cron.Cron
}

func New(cfg Config, planner Planner, ownerList OwnerLister, petList PetLister, log logger.Logger) (*Job, error) {
	if log == nil {
		log = logger.Nop()
	}

	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("digest timezone: %w", err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.Spec); err != nil {
		return nil, fmt.Errorf("digest spec %q: %w", cfg.Spec, err)
	}

	return &Job{
		planner: planner,
		owners:  ownerList,
		pets:    petList,
		log:     log.With(map[string]any{"component": "digest"}),
		spec:    cfg.Spec,
		loc:     loc,
		parser:  parser,
		now:     time.Now,
	}, nil
}

// Start registra el job en cron. Llamar Stop para cortarlo.
func (j *Job) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.c != nil {
		return nil
	}

	c := cron.New(cron.WithParser(j.parser), cron.WithLocation(j.loc))
	if _, err := c.AddFunc(j.spec, func() {
		if _, err := j.RunOnce(ctx); err != nil {
			j.log.Error("digest run failed", map[string]any{"error": err.Error()})
		}
	}); err != nil {
		return err
	}
	c.Start()
	j.c = c

	j.log.Info("digest scheduled", map[string]any{"spec": j.spec, "tz": j.loc.String()})
	return nil
}

// Stop espera a que termine una corrida en curso o a que venza ctx.
func (j *Job) Stop(ctx context.Context) {
	j.mu.Lock()
	c := j.c
	j.c = nil
	j.mu.Unlock()

	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce genera el plan de hoy (en la zona del digest) para cada mascota de
// cada dueño registrado. Un fallo en una mascota no corta la corrida.
func (j *Job) RunOnce(ctx context.Context) (Report, error) {
	list, err := j.owners.List(ctx)
	if err != nil {
		return Report{}, err
	}

	y, m, d := j.now().In(j.loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var rep Report
	for _, o := range list {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Owners++

		petList, err := j.pets.ListByOwner(ctx, o.ID)
		if err != nil {
			rep.Failures++
			j.log.Warn("digest list pets failed", map[string]any{"owner_id": o.ID, "error": err.Error()})
			continue
		}

		for _, p := range petList {
			rep.Pets++
			sch, err := j.planner.Generate(ctx, o.ID, p.ID, today)
			if err != nil {
				rep.Failures++
				j.log.Warn("digest plan failed", map[string]any{"owner_id": o.ID, "pet_id": p.ID, "error": err.Error()})
				continue
			}

			rep.Scheduled += len(sch.Tasks)
			rep.Excluded += len(sch.Excluded)
			rep.Conflicts += len(sch.Conflicts)

			j.log.Info("daily plan", map[string]any{
				"owner_id":    o.ID,
				"pet":         p.Name,
				"date":        today.Format("2006-01-02"),
				"explanation": sch.Explanation,
			})
		}
	}

	j.log.Info("digest finished", map[string]any{
		"owners":    rep.Owners,
		"pets":      rep.Pets,
		"scheduled": rep.Scheduled,
		"conflicts": rep.Conflicts,
		"failures":  rep.Failures,
	})
	return rep, nil
}
