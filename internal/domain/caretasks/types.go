package caretasks

import (
	"strings"

	"pet-care-planner/internal/platform/validation"
)

// Priority define la prioridad de una tarea.
// @Enum high, medium, low
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank: high=3 > medium=2 > low=1. 0 para valores fuera del vocabulario.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", validation.New("priority", "must be one of high, medium, low (got %q)", s)
	}
	return p, nil
}

// Frequency define cada cuánto se repite una tarea.
// @Enum once, daily, biweekly, weekly, monthly, quarterly, yearly
type Frequency string

const (
	FrequencyOnce      Frequency = "once"
	FrequencyDaily     Frequency = "daily"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// recurrenceDays es la tabla fija frecuencia -> días.
// Es una aproximación: monthly=30 y yearly=365 no siguen meses ni bisiestos del calendario.
var recurrenceDays = map[Frequency]int{
	FrequencyDaily:     1,
	FrequencyBiweekly:  14,
	FrequencyWeekly:    7,
	FrequencyMonthly:   30,
	FrequencyQuarterly: 90,
	FrequencyYearly:    365,
}

// OffsetDays devuelve los días a sumar al due date. ok=false para "once" y valores desconocidos.
func (f Frequency) OffsetDays() (int, bool) {
	d, ok := recurrenceDays[f]
	return d, ok
}

func (f Frequency) Valid() bool {
	if f == FrequencyOnce {
		return true
	}
	_, ok := recurrenceDays[f]
	return ok
}

func (f Frequency) Recurring() bool { return f != FrequencyOnce }

// ParseFrequency acepta vacío como "once".
func ParseFrequency(s string) (Frequency, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return FrequencyOnce, nil
	}
	f := Frequency(raw)
	if !f.Valid() {
		return "", validation.New("frequency", "must be one of once, daily, biweekly, weekly, monthly, quarterly, yearly (got %q)", s)
	}
	return f, nil
}
