package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
)

type CareTasksRepo struct {
	db *DB
}

func NewCareTasksRepo(db *DB) *CareTasksRepo {
	return &CareTasksRepo{db: db}
}

const careTaskColumns = `
	id, pet_id, pet_name,
	name, task_type, duration, priority,
	preferred_time, notes, frequency, due_date,
	completed, completed_at,
	created_at, updated_at`

// Create asigna seq = último de la mascota + 1. El índice único (pet_id, seq)
// hace fallar un alta concurrente en vez de dejar dos tareas empatadas.
func (r *CareTasksRepo) Create(ctx context.Context, t caretasks.CareTask) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO care_tasks (`+careTaskColumns+`, seq
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM care_tasks WHERE pet_id = ?))
	`,
		t.ID,
		t.PetID,
		t.PetName,
		t.Name,
		t.TaskType,
		t.Duration,
		string(t.Priority),
		t.PreferredTime,
		t.Notes,
		string(t.Frequency),
		t.DueDate.Format(dateLayout),
		t.Completed,
		formatNullTime(t.CompletedAt),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
		t.PetID,
	)
	return err
}

func (r *CareTasksRepo) Update(ctx context.Context, t caretasks.CareTask) error {
	res, err := r.db.exec(ctx, `
		UPDATE care_tasks
		SET
			pet_name = ?,
			name = ?,
			task_type = ?,
			duration = ?,
			priority = ?,
			preferred_time = ?,
			notes = ?,
			frequency = ?,
			due_date = ?,
			completed = ?,
			completed_at = ?,
			updated_at = ?
		WHERE id = ?
	`,
		t.PetName,
		t.Name,
		t.TaskType,
		t.Duration,
		string(t.Priority),
		t.PreferredTime,
		t.Notes,
		string(t.Frequency),
		t.DueDate.Format(dateLayout),
		t.Completed,
		formatNullTime(t.CompletedAt),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, caretasks.ErrNotFound)
}

func (r *CareTasksRepo) GetByID(ctx context.Context, id string) (caretasks.CareTask, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return caretasks.CareTask{}, caretasks.ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+careTaskColumns+` FROM care_tasks WHERE id = ?`, id)
	t, err := scanCareTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return caretasks.CareTask{}, caretasks.ErrNotFound
	}
	return t, err
}

func (r *CareTasksRepo) ListByPet(ctx context.Context, petID string) ([]caretasks.CareTask, error) {
	rows, err := r.db.query(ctx, `
		SELECT `+careTaskColumns+`
		FROM care_tasks
		WHERE pet_id = ?
		ORDER BY seq ASC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]caretasks.CareTask, 0)
	for rows.Next() {
		t, err := scanCareTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *CareTasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.exec(ctx, `DELETE FROM care_tasks WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return rowsAffected(res, caretasks.ErrNotFound)
}

func scanCareTask(s scanner) (caretasks.CareTask, error) {
	var (
		t                            caretasks.CareTask
		priority, frequency, dueDate string
		completedAt                  sql.NullString
		createdAt, updatedAt         string
	)
	if err := s.Scan(
		&t.ID,
		&t.PetID,
		&t.PetName,
		&t.Name,
		&t.TaskType,
		&t.Duration,
		&priority,
		&t.PreferredTime,
		&t.Notes,
		&frequency,
		&dueDate,
		&t.Completed,
		&completedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return caretasks.CareTask{}, err
	}

	t.Priority = caretasks.Priority(priority)
	t.Frequency = caretasks.Frequency(frequency)

	var err error
	if t.DueDate, err = time.Parse(dateLayout, dueDate); err != nil {
		return caretasks.CareTask{}, err
	}
	if t.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return caretasks.CareTask{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return caretasks.CareTask{}, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return caretasks.CareTask{}, err
	}
	return t, nil
}
