package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type InboxRepo struct {
	db DBTX
}

func NewInboxRepo(db DBTX) *InboxRepo {
	return &InboxRepo{db: db}
}

type InboxInsert struct {
	OwnerID     string
	Content     string
	Source      string
	Attachments []string
	CreatedAt   time.Time
}

func (r *InboxRepo) Insert(ctx context.Context, in InboxInsert) (string, error) {
	var attachmentsJSON *string
	if len(in.Attachments) > 0 {
		data, err := json.Marshal(in.Attachments)
		if err != nil {
			return "", fmt.Errorf("marshal attachments: %w", err)
		}
		s := string(data)
		attachmentsJSON = &s
	}

	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inbox_items (id, owner_id, content, source, attachments, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, in.OwnerID, in.Content, in.Source, attachmentsJSON, in.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("inbox insert: %w", err)
	}
	return id, nil
}

// Get returns a live (not yet triaged) inbox item, or nil.
func (r *InboxRepo) Get(ctx context.Context, ownerID, id string) (*InboxItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, content, source, attachments, created_at, deleted_at
		FROM inbox_items
		WHERE id = ? AND owner_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	return scanInboxRow(row)
}

func (r *InboxRepo) List(ctx context.Context, ownerID string) ([]InboxItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, content, source, attachments, created_at, deleted_at
		FROM inbox_items
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("inbox list: %w", err)
	}
	defer rows.Close()

	var out []InboxItem
	for rows.Next() {
		it, err := scanInboxRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inbox rows: %w", err)
	}
	return out, nil
}

// SoftDelete retires a capture record; set only by successful triage.
func (r *InboxRepo) SoftDelete(ctx context.Context, ownerID, id string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE inbox_items SET deleted_at = ? WHERE id = ? AND owner_id = ?
	`, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("inbox soft delete: %w", err)
	}
	return nil
}

func scanInboxRow(row scanner) (*InboxItem, error) {
	var (
		it             InboxItem
		attachmentsRaw sql.NullString
		deletedAt      sql.NullTime
	)
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Content, &it.Source, &attachmentsRaw, &it.CreatedAt, &deletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("inbox scan: %w", err)
	}
	if attachmentsRaw.Valid && attachmentsRaw.String != "" {
		if err := json.Unmarshal([]byte(attachmentsRaw.String), &it.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	it.DeletedAt = nullTime(deletedAt)
	return &it, nil
}
