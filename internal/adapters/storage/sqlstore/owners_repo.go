package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"pet-care-planner/internal/domain/owners"
)

type OwnersRepo struct {
	db *DB
}

func NewOwnersRepo(db *DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `id, name, time_available, preferences, created_at, updated_at`

// Save hace upsert; ON CONFLICT funciona igual en Postgres y SQLite.
func (r *OwnersRepo) Save(ctx context.Context, o owners.Owner) error {
	prefs := o.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	_, err = r.db.exec(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			time_available = excluded.time_available,
			preferences = excluded.preferences,
			updated_at = excluded.updated_at
	`,
		o.ID,
		o.Name,
		o.AvailableTime(),
		string(raw),
		formatTime(o.CreatedAt),
		formatTime(o.UpdatedAt),
	)
	return err
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, owners.ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = ?`, id)
	o, err := scanOwner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, err
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.query(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOwner(s scanner) (owners.Owner, error) {
	var (
		id, name             string
		minutes              int
		prefs                string
		createdAt, updatedAt string
	)
	if err := s.Scan(&id, &name, &minutes, &prefs, &createdAt, &updatedAt); err != nil {
		return owners.Owner{}, err
	}

	o, err := owners.New(id, name, minutes)
	if err != nil {
		return owners.Owner{}, err
	}
	if err := json.Unmarshal([]byte(prefs), &o.Preferences); err != nil {
		return owners.Owner{}, err
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return owners.Owner{}, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}
