package schedules

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
)

const (
	ReasonIncluded         = "fits priority+time budget"
	ReasonInsufficientTime = "insufficient remaining time"
	ReasonLowerPriority    = "lower priority/order"
)

// Exclusion es una tarea que quedó fuera del plan y por qué.
type Exclusion struct {
	Task   caretasks.CareTask
	Reason string
}

// Schedule es el resultado de una corrida del Scheduler para un dueño y una mascota.
// Owner y Pet son copias de solo lectura.
type Schedule struct {
	Date  time.Time
	Owner owners.Owner
	Pet   pets.Pet

	Tasks         []caretasks.CareTask // en orden de selección (o cronológico)
	Excluded      []Exclusion
	TotalDuration int
	Conflicts     []string
	Explanation   string
}

func NewSchedule(date time.Time, owner owners.Owner, pet pets.Pet) *Schedule {
	return &Schedule{
		Date:  caretasks.DateOf(date),
		Owner: owner,
		Pet:   pet,
		Tasks: make([]caretasks.CareTask, 0),
	}
}

// AddTask agrega sin chequear presupuesto; IsFeasible lo revalida.
func (s *Schedule) AddTask(t caretasks.CareTask) {
	s.Tasks = append(s.Tasks, t)
	s.TotalDuration = s.CalculateTotalDuration()
}

// RemoveTask saca la tarea con ese ID. Devuelve false si no estaba.
func (s *Schedule) RemoveTask(taskID string) bool {
	i := slices.IndexFunc(s.Tasks, func(t caretasks.CareTask) bool { return t.ID == taskID })
	if i < 0 {
		return false
	}
	s.Tasks = slices.Delete(s.Tasks, i, i+1)
	s.TotalDuration = s.CalculateTotalDuration()
	return true
}

func (s *Schedule) CalculateTotalDuration() int {
	total := 0
	for _, t := range s.Tasks {
		total += t.Duration
	}
	return total
}

func (s *Schedule) IsFeasible() bool {
	return s.CalculateTotalDuration() <= s.Owner.AvailableTime()
}

// GenerateExplanation arma el texto de inclusiones/exclusiones y lo guarda en Explanation.
func (s *Schedule) GenerateExplanation() string {
	var b strings.Builder

	budget := s.Owner.AvailableTime()
	fmt.Fprintf(&b, "Plan for %s on %s: %d of %d tasks scheduled, %d of %d minutes used.\n",
		s.Pet.Name, s.Date.Format(caretasks.DateLayout),
		len(s.Tasks), len(s.Tasks)+len(s.Excluded), s.TotalDuration, budget)

	if len(s.Tasks) == 0 {
		b.WriteString("No tasks scheduled.\n")
	}
	for _, t := range s.Tasks {
		fmt.Fprintf(&b, "+ %s: %s\n", t, ReasonIncluded)
	}
	for _, e := range s.Excluded {
		fmt.Fprintf(&b, "- %s: %s\n", e.Task, e.Reason)
	}
	for _, c := range s.Conflicts {
		fmt.Fprintf(&b, "! %s\n", c)
	}

	s.Explanation = strings.TrimRight(b.String(), "\n")
	return s.Explanation
}

// Display escribe el plan como tabla de texto.
func (s *Schedule) Display(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\n", s.Pet.String(), s.Date.Format(caretasks.DateLayout))
	fmt.Fprintln(tw, "TIME\tTASK\tMIN\tPRIORITY")
	for _, t := range s.Tasks {
		at := t.PreferredTime
		if at == "" {
			at = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", at, t.Name, t.Duration, t.Priority)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%d\t(of %d)\n", s.TotalDuration, s.Owner.AvailableTime())

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, e := range s.Excluded {
		if _, err := fmt.Fprintf(w, "skipped: %s (%s)\n", e.Task.Name, e.Reason); err != nil {
			return err
		}
	}
	for _, c := range s.Conflicts {
		if _, err := fmt.Fprintf(w, "warning: %s\n", c); err != nil {
			return err
		}
	}
	return nil
}
