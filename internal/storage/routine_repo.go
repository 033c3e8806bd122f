package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type RoutineRepo struct {
	db DBTX
}

func NewRoutineRepo(db DBTX) *RoutineRepo {
	return &RoutineRepo{db: db}
}

type RoutineInsert struct {
	OwnerID      string
	Name         string
	Description  *string
	Schedule     string
	TimeOfDay    *string
	Energy       int
	InitiativeID *string
	NextDue      time.Time
	CreatedAt    time.Time
}

const routineColumns = `id, owner_id, name, description, schedule, time_of_day,
	energy, initiative_id, active, next_due, created_at, updated_at, deleted_at`

func (r *RoutineRepo) Insert(ctx context.Context, in RoutineInsert) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO routines (
			id, owner_id, name, description, schedule, time_of_day,
			energy, initiative_id, active, next_due, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)
	`, id, in.OwnerID, in.Name, in.Description, in.Schedule, in.TimeOfDay,
		in.Energy, in.InitiativeID, in.NextDue, in.CreatedAt, in.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("routine insert: %w", err)
	}
	return id, nil
}

// Get fetches a live routine by id regardless of owner; the scheduler driver
// runs without an owner scope.
func (r *RoutineRepo) Get(ctx context.Context, id string) (*Routine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+routineColumns+`
		FROM routines
		WHERE id = ? AND deleted_at IS NULL
	`, id)
	return scanRoutineRow(row)
}

func (r *RoutineRepo) GetOwned(ctx context.Context, ownerID, id string) (*Routine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+routineColumns+`
		FROM routines
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	return scanRoutineRow(row)
}

func (r *RoutineRepo) List(ctx context.Context, ownerID string) ([]Routine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+routineColumns+`
		FROM routines
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("routine list: %w", err)
	}
	return collectRoutines(rows)
}

// ListDue returns active, non-deleted routines across all owners with
// next_due at or before the cutoff, soonest first.
func (r *RoutineRepo) ListDue(ctx context.Context, before time.Time) ([]Routine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+routineColumns+`
		FROM routines
		WHERE active = 1 AND deleted_at IS NULL AND next_due <= ?
		ORDER BY next_due ASC
	`, before)
	if err != nil {
		return nil, fmt.Errorf("routine list due: %w", err)
	}
	return collectRoutines(rows)
}

func (r *RoutineRepo) Update(ctx context.Context, rt *Routine) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE routines
		SET name = ?, description = ?, schedule = ?, time_of_day = ?,
			energy = ?, initiative_id = ?, next_due = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, rt.Name, rt.Description, rt.Schedule, rt.TimeOfDay,
		rt.Energy, rt.InitiativeID, rt.NextDue, rt.UpdatedAt, rt.ID, rt.OwnerID)
	if err != nil {
		return fmt.Errorf("routine update: %w", err)
	}
	return nil
}

func (r *RoutineRepo) SetNextDue(ctx context.Context, id string, nextDue, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE routines SET next_due = ?, updated_at = ? WHERE id = ?
	`, nextDue, now, id)
	if err != nil {
		return fmt.Errorf("routine set next due: %w", err)
	}
	return nil
}

func (r *RoutineRepo) SetActive(ctx context.Context, ownerID, id string, active bool, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE routines SET active = ?, updated_at = ? WHERE id = ? AND owner_id = ?
	`, boolToInt(active), now, id, ownerID)
	if err != nil {
		return fmt.Errorf("routine set active: %w", err)
	}
	return nil
}

func (r *RoutineRepo) SoftDelete(ctx context.Context, ownerID, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE routines SET deleted_at = ?, updated_at = ? WHERE id = ? AND owner_id = ?
	`, now, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("routine soft delete: %w", err)
	}
	return nil
}

func scanRoutineRow(row scanner) (*Routine, error) {
	var (
		rt           Routine
		description  sql.NullString
		timeOfDay    sql.NullString
		initiativeID sql.NullString
		active       int
		deletedAt    sql.NullTime
	)
	if err := row.Scan(
		&rt.ID, &rt.OwnerID, &rt.Name, &description, &rt.Schedule, &timeOfDay,
		&rt.Energy, &initiativeID, &active, &rt.NextDue, &rt.CreatedAt, &rt.UpdatedAt, &deletedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("routine scan: %w", err)
	}
	rt.Description = nullStr(description)
	rt.TimeOfDay = nullStr(timeOfDay)
	rt.InitiativeID = nullStr(initiativeID)
	rt.Active = active != 0
	rt.DeletedAt = nullTime(deletedAt)
	return &rt, nil
}

func collectRoutines(rows *sql.Rows) ([]Routine, error) {
	defer rows.Close()
	var out []Routine
	for rows.Next() {
		rt, err := scanRoutineRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routine rows: %w", err)
	}
	return out, nil
}
