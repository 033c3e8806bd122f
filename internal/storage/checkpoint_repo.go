package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CheckpointRepo struct {
	db DBTX
}

func NewCheckpointRepo(db DBTX) *CheckpointRepo {
	return &CheckpointRepo{db: db}
}

type CheckpointInsert struct {
	QuestID   string
	Title     string
	SortOrder int
	CreatedAt time.Time
}

func (r *CheckpointRepo) Insert(ctx context.Context, in CheckpointInsert) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkpoints (id, quest_id, title, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, in.QuestID, in.Title, in.SortOrder, in.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("checkpoint insert: %w", err)
	}
	return id, nil
}

func (r *CheckpointRepo) Get(ctx context.Context, id string) (*Checkpoint, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, quest_id, title, completed, sort_order, completed_at, created_at
		FROM checkpoints
		WHERE id = ?
	`, id)
	return scanCheckpointRow(row)
}

func (r *CheckpointRepo) ListByQuest(ctx context.Context, questID string) ([]Checkpoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quest_id, title, completed, sort_order, completed_at, created_at
		FROM checkpoints
		WHERE quest_id = ?
		ORDER BY sort_order ASC, id ASC
	`, questID)
	if err != nil {
		return nil, fmt.Errorf("checkpoint list: %w", err)
	}
	defer rows.Close()

	var out []Checkpoint
	for rows.Next() {
		c, err := scanCheckpointRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkpoint rows: %w", err)
	}
	return out, nil
}

func (r *CheckpointRepo) Update(ctx context.Context, c *Checkpoint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE checkpoints
		SET title = ?, completed = ?, sort_order = ?, completed_at = ?
		WHERE id = ?
	`, c.Title, boolToInt(c.Completed), c.SortOrder, c.CompletedAt, c.ID)
	if err != nil {
		return fmt.Errorf("checkpoint update: %w", err)
	}
	return nil
}

func (r *CheckpointRepo) SetOrder(ctx context.Context, id string, order int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE checkpoints SET sort_order = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("checkpoint set order: %w", err)
	}
	return nil
}

// Delete removes the row. Checkpoints are owned by their quest and have no
// independent lifecycle, so no soft delete here.
func (r *CheckpointRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("checkpoint delete: %w", err)
	}
	return nil
}

func scanCheckpointRow(row scanner) (*Checkpoint, error) {
	var (
		c           Checkpoint
		completed   int
		completedAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.QuestID, &c.Title, &completed, &c.SortOrder, &completedAt, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("checkpoint scan: %w", err)
	}
	c.Completed = completed != 0
	c.CompletedAt = nullTime(completedAt)
	return &c, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
