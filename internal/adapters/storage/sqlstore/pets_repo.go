package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"pet-care-planner/internal/domain/pets"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, age, special_needs,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	needs, err := json.Marshal(nonNil(p.SpecialNeeds))
	if err != nil {
		return err
	}
	_, err = r.db.exec(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.Age,
		string(needs),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	needs, err := json.Marshal(nonNil(p.SpecialNeeds))
	if err != nil {
		return err
	}
	res, err := r.db.exec(ctx, `
		UPDATE pets
		SET
			name = ?,
			species = ?,
			breed = ?,
			age = ?,
			special_needs = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		string(p.Species),
		p.Breed,
		p.Age,
		string(needs),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// scanner lo cumplen *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                  pets.Pet
		species, needs     string
		createdAt, updated string
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&p.Age,
		&needs,
		&createdAt,
		&updated,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	if err := json.Unmarshal([]byte(needs), &p.SpecialNeeds); err != nil {
		return pets.Pet{}, err
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return pets.Pet{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
