package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type EpicRepo struct {
	db DBTX
}

func NewEpicRepo(db DBTX) *EpicRepo {
	return &EpicRepo{db: db}
}

type EpicInsert struct {
	OwnerID      string
	Title        string
	Description  *string
	InitiativeID *string
	CreatedAt    time.Time
}

const epicColumns = `id, owner_id, title, description, status, initiative_id,
	created_at, updated_at, completed_at, deleted_at`

func (r *EpicRepo) Insert(ctx context.Context, in EpicInsert) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO epics (id, owner_id, title, description, status, initiative_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'active', ?, ?, ?)
	`, id, in.OwnerID, in.Title, in.Description, in.InitiativeID, in.CreatedAt, in.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("epic insert: %w", err)
	}
	return id, nil
}

func (r *EpicRepo) Get(ctx context.Context, ownerID, id string) (*Epic, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+epicColumns+`
		FROM epics
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	return scanEpicRow(row)
}

func (r *EpicRepo) List(ctx context.Context, ownerID string) ([]Epic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+epicColumns+`
		FROM epics
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("epic list: %w", err)
	}
	defer rows.Close()

	var out []Epic
	for rows.Next() {
		e, err := scanEpicRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("epic rows: %w", err)
	}
	return out, nil
}

func (r *EpicRepo) Update(ctx context.Context, e *Epic) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE epics
		SET title = ?, description = ?, initiative_id = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, e.Title, e.Description, e.InitiativeID, e.UpdatedAt, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("epic update: %w", err)
	}
	return nil
}

func (r *EpicRepo) SetStatus(ctx context.Context, id, status string, completedAt *time.Time, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE epics SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?
	`, status, completedAt, now, id)
	if err != nil {
		return fmt.Errorf("epic set status: %w", err)
	}
	return nil
}

func (r *EpicRepo) SoftDelete(ctx context.Context, ownerID, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE epics SET deleted_at = ?, updated_at = ? WHERE id = ? AND owner_id = ?
	`, now, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("epic soft delete: %w", err)
	}
	return nil
}

func scanEpicRow(row scanner) (*Epic, error) {
	var (
		e            Epic
		description  sql.NullString
		initiativeID sql.NullString
		completedAt  sql.NullTime
		deletedAt    sql.NullTime
	)
	if err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &description, &e.Status, &initiativeID,
		&e.CreatedAt, &e.UpdatedAt, &completedAt, &deletedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("epic scan: %w", err)
	}
	e.Description = nullStr(description)
	e.InitiativeID = nullStr(initiativeID)
	e.CompletedAt = nullTime(completedAt)
	e.DeletedAt = nullTime(deletedAt)
	return &e, nil
}
