package caretasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-planner/internal/platform/timeofday"
	"pet-care-planner/internal/platform/validation"

	"github.com/google/uuid"
)

// DateLayout es el formato de due_date en API, storage y archivos de plan.
const DateLayout = "2006-01-02"

var (
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrNotRecurring     = errors.New("task does not recur")
)

// CareTask es la unidad que se agenda.
// PetName es una copia del nombre de la mascota para filtrar entre mascotas;
// el dueño real de la tarea es la mascota que la contiene (PetID).
type CareTask struct {
	ID      string
	PetID   string
	PetName string

	Name     string
	TaskType string
	Duration int // minutos, > 0
	Priority Priority

	// "" = sin hora preferida. Si viene, "HH:MM" o "H:MM AM/PM".
	PreferredTime string
	Notes         string

	Frequency   Frequency
	DueDate     time.Time // fecha (UTC, medianoche)
	Completed   bool
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewInput struct {
	PetID         string
	PetName       string
	Name          string
	TaskType      string
	Duration      int
	Priority      string
	PreferredTime string
	Notes         string
	Frequency     string
	DueDate       time.Time // zero = hoy

	// StrictTime rechaza preferred_time que no se pueda parsear.
	// Sin él, una hora ilegible deja la tarea como "sin hora" al agendar.
	StrictTime bool
}

// New valida y construye una tarea pendiente con ID nuevo.
func New(in NewInput) (CareTask, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CareTask{}, validation.New("name", "is required")
	}
	if in.Duration <= 0 {
		return CareTask{}, validation.New("duration", "must be a positive number of minutes (got %d)", in.Duration)
	}
	prio, err := ParsePriority(in.Priority)
	if err != nil {
		return CareTask{}, err
	}
	freq, err := ParseFrequency(in.Frequency)
	if err != nil {
		return CareTask{}, err
	}
	pt, err := normalizePreferredTime(in.PreferredTime, in.StrictTime)
	if err != nil {
		return CareTask{}, err
	}

	due := in.DueDate
	if due.IsZero() {
		due = time.Now()
	}

	return CareTask{
		ID:            uuid.NewString(),
		PetID:         strings.TrimSpace(in.PetID),
		PetName:       strings.TrimSpace(in.PetName),
		Name:          name,
		TaskType:      strings.TrimSpace(in.TaskType),
		Duration:      in.Duration,
		Priority:      prio,
		PreferredTime: pt,
		Notes:         strings.TrimSpace(in.Notes),
		Frequency:     freq,
		DueDate:       DateOf(due),
	}, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name          *string
	TaskType      *string
	Duration      *int
	Priority      *string
	PreferredTime *string
	Notes         *string
	Frequency     *string
	DueDate       *time.Time
	StrictTime    bool
}

// Apply devuelve una copia con los cambios validados. El due date solo avanza.
func (t CareTask) Apply(in UpdateInput) (CareTask, error) {
	out := t

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return CareTask{}, validation.New("name", "is required")
		}
		out.Name = name
	}
	if in.TaskType != nil {
		out.TaskType = strings.TrimSpace(*in.TaskType)
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return CareTask{}, validation.New("duration", "must be a positive number of minutes (got %d)", *in.Duration)
		}
		out.Duration = *in.Duration
	}
	if in.Priority != nil {
		p, err := ParsePriority(*in.Priority)
		if err != nil {
			return CareTask{}, err
		}
		out.Priority = p
	}
	if in.PreferredTime != nil {
		pt, err := normalizePreferredTime(*in.PreferredTime, in.StrictTime)
		if err != nil {
			return CareTask{}, err
		}
		out.PreferredTime = pt
	}
	if in.Notes != nil {
		out.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Frequency != nil {
		f, err := ParseFrequency(*in.Frequency)
		if err != nil {
			return CareTask{}, err
		}
		out.Frequency = f
	}
	if in.DueDate != nil {
		d := DateOf(*in.DueDate)
		if d.Before(t.DueDate) {
			return CareTask{}, validation.New("due_date", "cannot move earlier than %s", t.DueDate.Format(DateLayout))
		}
		out.DueDate = d
	}

	return out, nil
}

// MarkComplete marca la tarea como hecha y, si es recurrente, devuelve la siguiente
// ocurrencia (nil para "once"). La instancia completada queda como historial.
func (t *CareTask) MarkComplete() (*CareTask, error) {
	if !t.Frequency.Valid() {
		return nil, validation.New("frequency", "unknown frequency %q", t.Frequency)
	}
	if t.Completed {
		return nil, ErrAlreadyCompleted
	}

	t.Completed = true
	if !t.Frequency.Recurring() {
		return nil, nil
	}

	next, err := t.NextOccurrence()
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// NextOccurrence construye la siguiente instancia sin tocar la actual.
func (t CareTask) NextOccurrence() (CareTask, error) {
	days, ok := t.Frequency.OffsetDays()
	if !ok {
		if t.Frequency == FrequencyOnce {
			return CareTask{}, ErrNotRecurring
		}
		return CareTask{}, validation.New("frequency", "unknown frequency %q", t.Frequency)
	}

	next := t
	next.ID = uuid.NewString()
	next.Completed = false
	next.CompletedAt = nil
	next.DueDate = t.DueDate.AddDate(0, 0, days)
	return next, nil
}

func (t CareTask) PriorityValue() int { return t.Priority.Rank() }

// StartMinute: ok=false si la tarea no tiene hora o no se entiende.
func (t CareTask) StartMinute() (int, bool) {
	return timeofday.Lookup(t.PreferredTime)
}

func (t CareTask) Timed() bool {
	_, ok := t.StartMinute()
	return ok
}

// IsDue indica si la tarea vence en date o antes.
func (t CareTask) IsDue(date time.Time) bool {
	return !t.DueDate.After(DateOf(date))
}

func (t CareTask) String() string {
	s := fmt.Sprintf("%s (%d min, %s priority)", t.Name, t.Duration, t.Priority)
	if t.PreferredTime != "" {
		s += " at " + t.PreferredTime
	}
	if t.Frequency.Recurring() {
		s += ", " + string(t.Frequency)
	}
	if t.Completed {
		s += " [done]"
	}
	return s
}

// DateOf recorta a la fecha calendario (medianoche UTC).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizePreferredTime(raw string, strict bool) (string, error) {
	pt := strings.TrimSpace(raw)
	if pt == "" || !strict {
		return pt, nil
	}
	if _, err := timeofday.Parse(pt); err != nil {
		return "", &validation.Error{Field: "preferred_time", Reason: err.Error()}
	}
	return pt, nil
}
