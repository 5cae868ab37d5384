package schedules

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"pet-care-planner/internal/domain/caretasks"
)

// Todas las funciones de este archivo son puras: devuelven slices nuevos y
// nunca modifican la entrada.

// SortByPriority ordena de forma estable por prioridad desc y, a igual prioridad,
// por duración asc (las cortas primero para empaquetar más tareas).
func SortByPriority(tasks []caretasks.CareTask) []caretasks.CareTask {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b caretasks.CareTask) int {
		if c := cmp.Compare(b.PriorityValue(), a.PriorityValue()); c != 0 {
			return c
		}
		return cmp.Compare(a.Duration, b.Duration)
	})
	return out
}

// SortByTime ordena por minuto de inicio. Las tareas sin hora (o con hora
// ilegible) quedan al final en su orden original.
func SortByTime(tasks []caretasks.CareTask) []caretasks.CareTask {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b caretasks.CareTask) int {
		am, aok := a.StartMinute()
		bm, bok := b.StartMinute()
		switch {
		case aok && bok:
			return cmp.Compare(am, bm)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
	return out
}

// SelectWithinBudget hace una sola pasada greedy: incluye cada tarea si entra en
// lo que queda del presupuesto. Una tarea saltada no bloquea a las siguientes.
func SelectWithinBudget(sorted []caretasks.CareTask, budget int) (selected, excluded []caretasks.CareTask) {
	selected = make([]caretasks.CareTask, 0, len(sorted))
	excluded = make([]caretasks.CareTask, 0)

	used := 0
	for _, t := range sorted {
		if used+t.Duration <= budget {
			selected = append(selected, t)
			used += t.Duration
			continue
		}
		excluded = append(excluded, t)
	}
	return selected, excluded
}

// Conflict es un par de tareas con horario que se pisan.
type Conflict struct {
	First  caretasks.CareTask
	Second caretasks.CareTask
	// SameStart: ambas empiezan en el mismo minuto.
	SameStart bool
}

func (c Conflict) String() string {
	if c.SameStart {
		return fmt.Sprintf("%s and %s start at the same time", describe(c.First), describe(c.Second))
	}
	return fmt.Sprintf("%s overlaps %s", describe(c.First), describe(c.Second))
}

// FindConflicts compara cada par (i < j) de tareas con horario. Los intervalos son
// [inicio, inicio+duración): terminar justo cuando otra empieza no es conflicto.
func FindConflicts(tasks []caretasks.CareTask) []Conflict {
	type slot struct {
		task       caretasks.CareTask
		start, end int
	}

	timed := make([]slot, 0, len(tasks))
	for _, t := range tasks {
		start, ok := t.StartMinute()
		if !ok {
			continue
		}
		timed = append(timed, slot{task: t, start: start, end: start + t.Duration})
	}

	out := make([]Conflict, 0)
	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			a, b := timed[i], timed[j]
			same := a.start == b.start
			if same || (a.start < b.end && b.start < a.end) {
				out = append(out, Conflict{First: a.task, Second: b.task, SameStart: same})
			}
		}
	}
	return out
}

// DetectConflicts devuelve un aviso legible por par en conflicto. Nunca falla.
func DetectConflicts(tasks []caretasks.CareTask) []string {
	conflicts := FindConflicts(tasks)
	out := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, c.String())
	}
	return out
}

func FilterByCompletion(tasks []caretasks.CareTask, completed bool) []caretasks.CareTask {
	return filter(tasks, func(t caretasks.CareTask) bool { return t.Completed == completed })
}

// FilterByPetName usa la copia pet_name de la tarea; compara sin mayúsculas.
func FilterByPetName(tasks []caretasks.CareTask, name string) []caretasks.CareTask {
	name = strings.TrimSpace(name)
	return filter(tasks, func(t caretasks.CareTask) bool { return strings.EqualFold(t.PetName, name) })
}

func filter(tasks []caretasks.CareTask, keep func(caretasks.CareTask) bool) []caretasks.CareTask {
	out := make([]caretasks.CareTask, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func describe(t caretasks.CareTask) string {
	s := fmt.Sprintf("'%s'", t.Name)
	if t.PetName != "" {
		s += " [" + t.PetName + "]"
	}
	return fmt.Sprintf("%s (%s, %d min)", s, t.PreferredTime, t.Duration)
}
