package pets

import (
	"fmt"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
)

// Species define las especies soportadas.
// @Enum dog, cat, rabbit, bird, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesOther:
		return true
	default:
		return false
	}
}

// Pet es la raíz de agregación de sus tareas de cuidado.
type Pet struct {
	ID          string
	OwnerUserID string

	Name         string
	Species      Species
	Breed        string
	Age          int // años, >= 0
	SpecialNeeds []string

	// Tasks no se persiste con la mascota: el service la hidrata desde caretasks.
	Tasks []caretasks.CareTask

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddTask agrega al final y sella la copia del nombre de la mascota en la tarea.
func (p *Pet) AddTask(t caretasks.CareTask) {
	t.PetID = p.ID
	t.PetName = p.Name
	p.Tasks = append(p.Tasks, t)
}

func (p Pet) TaskCount() int { return len(p.Tasks) }

// Info: "Buddy (dog, Golden Retriever, 3 years)".
func (p Pet) Info() string {
	parts := []string{string(p.Species)}
	if p.Breed != "" {
		parts = append(parts, p.Breed)
	}
	if p.Age == 1 {
		parts = append(parts, "1 year")
	} else {
		parts = append(parts, fmt.Sprintf("%d years", p.Age))
	}
	s := fmt.Sprintf("%s (%s)", p.Name, strings.Join(parts, ", "))
	if len(p.SpecialNeeds) > 0 {
		s += " - special needs: " + strings.Join(p.SpecialNeeds, ", ")
	}
	return s
}

func (p Pet) String() string {
	return fmt.Sprintf("%s the %s", p.Name, p.Species)
}
