package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-planner/internal/domain/events"
)

type EventsRepo struct {
	db *DB
}

func NewEventsRepo(db *DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, pet_id, task_id,
	type, occurred_at, recorded_at,
	title, notes,
	actor_type, actor_id,
	source, status`

func (r *EventsRepo) Create(ctx context.Context, e events.PetEvent) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO pet_events (`+eventColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		e.ID,
		e.PetID,
		e.TaskID,
		string(e.Type),
		formatTime(e.OccurredAt),
		formatTime(e.RecordedAt),
		e.Title,
		e.Notes,
		string(e.Actor.Type),
		e.Actor.ID,
		string(e.Source),
		string(e.Status),
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.PetEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.PetEvent{}, events.ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+eventColumns+` FROM pet_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return events.PetEvent{}, events.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.PetEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return []events.PetEvent{}, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM pet_events WHERE pet_id = ?`)
	args := []any{petID}

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, "?")
			args = append(args, string(t))
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	// occurred_at es texto de ancho fijo: comparar strings compara instantes
	if filter.From != nil {
		sb.WriteString(" AND occurred_at >= ?")
		args = append(args, formatTime(*filter.From))
	}
	if filter.To != nil {
		sb.WriteString(" AND occurred_at <= ?")
		args = append(args, formatTime(*filter.To))
	}

	// q: búsqueda simple en title + notes
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(" AND LOWER(title || ' ' || notes) LIKE ?")
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	if filter.TaskID != "" {
		sb.WriteString(" AND task_id = ?")
		args = append(args, filter.TaskID)
	}
	if filter.ActiveOnly {
		sb.WriteString(" AND status = ?")
		args = append(args, string(events.EventStatusActive))
	}

	sb.WriteString(" ORDER BY occurred_at DESC, recorded_at DESC LIMIT ?")
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.PetEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) Void(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.ErrNotFound
	}

	res, err := r.db.exec(ctx, `UPDATE pet_events SET status = ? WHERE id = ?`,
		string(events.EventStatusVoided), id)
	if err != nil {
		return err
	}
	return rowsAffected(res, events.ErrNotFound)
}

func scanEvent(s scanner) (events.PetEvent, error) {
	var (
		e                           events.PetEvent
		typ, actorType, src, status string
		occurredAt, recordedAt      string
	)
	if err := s.Scan(
		&e.ID,
		&e.PetID,
		&e.TaskID,
		&typ,
		&occurredAt,
		&recordedAt,
		&e.Title,
		&e.Notes,
		&actorType,
		&e.Actor.ID,
		&src,
		&status,
	); err != nil {
		return events.PetEvent{}, err
	}

	e.Type = events.EventType(typ)
	e.Actor.Type = events.ActorType(actorType)
	e.Source = events.Source(src)
	e.Status = events.EventStatus(status)

	var err error
	if e.OccurredAt, err = parseTime(occurredAt); err != nil {
		return events.PetEvent{}, err
	}
	if e.RecordedAt, err = parseTime(recordedAt); err != nil {
		return events.PetEvent{}, err
	}
	return e, nil
}
