// Package timeofday convierte horas del día escritas por humanos ("14:30", "2:30 PM")
// en minutos desde medianoche (0..1439).
package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

var ErrInvalidFormat = errors.New("invalid time format")

// ParseError se devuelve cuando el texto no es HH:MM (24h) ni H:MM AM/PM (12h).
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM or H:MM AM/PM", e.Input)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// h:mm con meridiano opcional; espacios alrededor del meridiano permitidos.
var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])?$`)

// Parse devuelve los minutos desde medianoche.
// Un string vacío NO es "sin hora": es un error. Los callers chequean ausencia antes.
func Parse(s string) (int, error) {
	in := strings.TrimSpace(s)
	m := clockRe.FindStringSubmatch(in)
	if m == nil {
		return 0, &ParseError{Input: s}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return 0, &ParseError{Input: s}
	}

	if m[3] == "" {
		if hour > 23 {
			return 0, &ParseError{Input: s}
		}
		return hour*60 + minute, nil
	}

	// 12h: 12:xx AM = 0:xx, 12:xx PM = 12:xx
	if hour < 1 || hour > 12 {
		return 0, &ParseError{Input: s}
	}
	hour %= 12
	if strings.EqualFold(m[3], "pm") {
		hour += 12
	}
	return hour*60 + minute, nil
}

// Lookup es Parse para caminos tolerantes: ok=false si no hay hora o no se entiende.
func Lookup(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	m, err := Parse(s)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Format devuelve HH:MM (24h). Valores fuera de rango se acotan al día.
func Format(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= MinutesPerDay {
		minutes = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
