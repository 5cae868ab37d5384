package schedules

import (
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
)

// PreferenceChronological permite que el dueño pise Options.Chronological.
const PreferenceChronological = "chronological"

type Options struct {
	// Chronological reordena las tareas elegidas por hora para mostrarlas.
	Chronological bool
}

// Scheduler no guarda estado entre corridas; se puede reutilizar.
type Scheduler struct {
	opts Options
	now  func() time.Time
}

func NewScheduler(opts Options) *Scheduler {
	return &Scheduler{opts: opts, now: time.Now}
}

// GenerateSchedule arma el plan de hoy.
func (s *Scheduler) GenerateSchedule(owner owners.Owner, pet pets.Pet, tasks []caretasks.CareTask) *Schedule {
	return s.GenerateScheduleFor(s.now(), owner, pet, tasks)
}

// GenerateScheduleFor: prioridad -> selección greedy -> orden de display ->
// conflictos sobre lo elegido -> total y explicación. Siempre devuelve un plan,
// aunque esté vacío.
func (s *Scheduler) GenerateScheduleFor(date time.Time, owner owners.Owner, pet pets.Pet, tasks []caretasks.CareTask) *Schedule {
	budget := owner.AvailableTime()

	selected, skipped := SelectWithinBudget(SortByPriority(tasks), budget)
	if owner.PreferenceBool(PreferenceChronological, s.opts.Chronological) {
		selected = SortByTime(selected)
	}

	sch := NewSchedule(date, owner, pet)
	for _, t := range selected {
		sch.AddTask(t)
	}
	for _, t := range skipped {
		sch.Excluded = append(sch.Excluded, Exclusion{Task: t, Reason: exclusionReason(t, budget)})
	}
	sch.Conflicts = DetectConflicts(sch.Tasks)
	sch.GenerateExplanation()
	return sch
}

func (s *Scheduler) DetectConflicts(tasks []caretasks.CareTask) []string {
	return DetectConflicts(tasks)
}

// Una tarea más larga que todo el presupuesto nunca entra; el resto quedó afuera
// porque otras de mayor prioridad (o anteriores) ocuparon el tiempo.
func exclusionReason(t caretasks.CareTask, budget int) string {
	if t.Duration > budget {
		return ReasonInsufficientTime
	}
	return ReasonLowerPriority
}
