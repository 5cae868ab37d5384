package events

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// PetEvent es una entrada del registro de actividad de la mascota.
type PetEvent struct {
	ID    string
	PetID string

	// TaskID: tarea relacionada, vacío para planes y notas.
	TaskID string

	Type EventType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	Actor  Actor
	Source Source
	Status EventStatus
}
