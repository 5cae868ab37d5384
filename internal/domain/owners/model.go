package owners

import (
	"maps"
	"time"

	"pet-care-planner/internal/platform/validation"
)

// DefaultTimeAvailable: 8 horas.
const DefaultTimeAvailable = 480

// Owner es el usuario que planifica. ID = user id autenticado.
type Owner struct {
	ID   string
	Name string

	// minutos disponibles por día; nunca negativo, solo cambia vía SetAvailableTime
	timeAvailable int

	Preferences map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New valida el presupuesto de tiempo inicial.
func New(id, name string, timeAvailable int) (Owner, error) {
	o := Owner{ID: id, Name: name, Preferences: map[string]any{}}
	if err := o.SetAvailableTime(timeAvailable); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (o Owner) AvailableTime() int { return o.timeAvailable }

func (o *Owner) SetAvailableTime(minutes int) error {
	if minutes < 0 {
		return validation.New("time_available", "must be zero or more minutes (got %d)", minutes)
	}
	o.timeAvailable = minutes
	return nil
}

func (o Owner) HasTimeFor(duration int) bool {
	return duration <= o.timeAvailable
}

// UpdatePreferences mezcla claves; un valor nil borra la clave.
func (o *Owner) UpdatePreferences(prefs map[string]any) {
	if o.Preferences == nil {
		o.Preferences = map[string]any{}
	}
	for k, v := range prefs {
		if v == nil {
			delete(o.Preferences, k)
			continue
		}
		o.Preferences[k] = v
	}
}

// PreferenceBool lee una preferencia booleana con default.
func (o Owner) PreferenceBool(key string, def bool) bool {
	v, ok := o.Preferences[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Clone copia el map de preferencias para no compartirlo entre llamadas.
func (o Owner) Clone() Owner {
	out := o
	out.Preferences = maps.Clone(o.Preferences)
	if out.Preferences == nil {
		out.Preferences = map[string]any{}
	}
	return out
}
