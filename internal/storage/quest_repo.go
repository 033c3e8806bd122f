package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	OwnerID           string
	Title             string
	Description       *string
	Energy            int
	Status            string
	EpicID            *string
	RoutineID         *string
	RoutineOccurrence *time.Time
	CreatedAt         time.Time
}

const questColumns = `id, owner_id, title, description, energy, status,
	epic_id, routine_id, routine_occurrence,
	created_at, updated_at, started_at, completed_at, deleted_at`

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (
			id, owner_id, title, description, energy, status,
			epic_id, routine_id, routine_occurrence,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, in.OwnerID, in.Title, in.Description, in.Energy, in.Status,
		in.EpicID, in.RoutineID, in.RoutineOccurrence, in.CreatedAt, in.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("quest insert: %w", err)
	}
	return id, nil
}

// Get returns a live (non-deleted) quest in the owner's scope, or nil.
func (r *QuestRepo) Get(ctx context.Context, ownerID, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	return scanQuestRow(row)
}

// GetAny is Get without the soft-delete filter; used by restore.
func (r *QuestRepo) GetAny(ctx context.Context, ownerID, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListByStatus(ctx context.Context, ownerID, status string) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE owner_id = ? AND status = ? AND deleted_at IS NULL
		ORDER BY id ASC
	`, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("quest list by status: %w", err)
	}
	return collectQuests(rows)
}

func (r *QuestRepo) CountActive(ctx context.Context, ownerID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM quests
		WHERE owner_id = ? AND status = 'active' AND deleted_at IS NULL
	`, ownerID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("quest count active: %w", err)
	}
	return n, nil
}

func (r *QuestRepo) GetActive(ctx context.Context, ownerID string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE owner_id = ? AND status = 'active' AND deleted_at IS NULL
		LIMIT 1
	`, ownerID)
	return scanQuestRow(row)
}

// Update rewrites the caller-editable fields (title, description, energy,
// epic link). Status and its timestamps go through the transition methods.
func (r *QuestRepo) Update(ctx context.Context, q *Quest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET title = ?, description = ?, energy = ?, epic_id = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, q.Title, q.Description, q.Energy, q.EpicID, q.UpdatedAt, q.ID, q.OwnerID)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

func (r *QuestRepo) MarkStarted(ctx context.Context, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET status = 'active', started_at = ?, updated_at = ?
		WHERE id = ?
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("quest mark started: %w", err)
	}
	return nil
}

func (r *QuestRepo) MarkCompleted(ctx context.Context, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET status = 'completed', completed_at = ?, updated_at = ?
		WHERE id = ?
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("quest mark completed: %w", err)
	}
	return nil
}

func (r *QuestRepo) SetStatus(ctx context.Context, id, status string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET status = ?, updated_at = ? WHERE id = ?
	`, status, now, id)
	if err != nil {
		return fmt.Errorf("quest set status: %w", err)
	}
	return nil
}

func (r *QuestRepo) SoftDelete(ctx context.Context, ownerID, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET deleted_at = ?, updated_at = ? WHERE id = ? AND owner_id = ?
	`, now, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("quest soft delete: %w", err)
	}
	return nil
}

func (r *QuestRepo) Restore(ctx context.Context, ownerID, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET deleted_at = NULL, updated_at = ? WHERE id = ? AND owner_id = ?
	`, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("quest restore: %w", err)
	}
	return nil
}

// SumEnergyCompletedBetween derives the spent figure for an energy budget:
// total energy of quests completed in [from, to).
func (r *QuestRepo) SumEnergyCompletedBetween(ctx context.Context, ownerID string, from, to time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(energy), 0)
		FROM quests
		WHERE owner_id = ? AND status = 'completed' AND deleted_at IS NULL
			AND completed_at >= ? AND completed_at < ?
	`, ownerID, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("quest sum energy: %w", err)
	}
	return n, nil
}

func (r *QuestRepo) ListCompletedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE owner_id = ? AND status = 'completed' AND deleted_at IS NULL
			AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at ASC
	`, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("quest list completed: %w", err)
	}
	return collectQuests(rows)
}

// GetByRoutineOccurrence finds the quest already spawned for a routine
// occurrence, if any.
func (r *QuestRepo) GetByRoutineOccurrence(ctx context.Context, routineID string, occurrence time.Time) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE routine_id = ? AND routine_occurrence = ?
	`, routineID, occurrence)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListRoutineSpawnedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE owner_id = ? AND routine_id IS NOT NULL AND deleted_at IS NULL
			AND routine_occurrence >= ? AND routine_occurrence < ?
		ORDER BY routine_occurrence ASC
	`, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("quest list routine spawned: %w", err)
	}
	return collectQuests(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		q           Quest
		description sql.NullString
		epicID      sql.NullString
		routineID   sql.NullString
		occurrence  sql.NullTime
		startedAt   sql.NullTime
		completedAt sql.NullTime
		deletedAt   sql.NullTime
	)
	if err := row.Scan(
		&q.ID, &q.OwnerID, &q.Title, &description, &q.Energy, &q.Status,
		&epicID, &routineID, &occurrence,
		&q.CreatedAt, &q.UpdatedAt, &startedAt, &completedAt, &deletedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}
	q.Description = nullStr(description)
	q.EpicID = nullStr(epicID)
	q.RoutineID = nullStr(routineID)
	q.RoutineOccurrence = nullTime(occurrence)
	q.StartedAt = nullTime(startedAt)
	q.CompletedAt = nullTime(completedAt)
	q.DeletedAt = nullTime(deletedAt)
	return &q, nil
}

func collectQuests(rows *sql.Rows) ([]Quest, error) {
	defer rows.Close()
	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
