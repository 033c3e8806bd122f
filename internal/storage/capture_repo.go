package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CaptureRepo persists the non-quest triage targets: notes, items, and source
// documents. These modules live outside the guidance core; only the minimal
// create/get surface that triage needs is implemented here.
type CaptureRepo struct {
	db DBTX
}

func NewCaptureRepo(db DBTX) *CaptureRepo {
	return &CaptureRepo{db: db}
}

func (r *CaptureRepo) InsertNote(ctx context.Context, ownerID, title, body string, now time.Time) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, owner_id, title, body, created_at) VALUES (?, ?, ?, ?, ?)
	`, id, ownerID, title, body, now)
	if err != nil {
		return "", fmt.Errorf("note insert: %w", err)
	}
	return id, nil
}

func (r *CaptureRepo) GetNote(ctx context.Context, ownerID, id string) (*Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, body, created_at FROM notes WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	var n Note
	if err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("note get: %w", err)
	}
	return &n, nil
}

func (r *CaptureRepo) InsertItem(ctx context.Context, ownerID, name string, quantity int, location *string, now time.Time) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, owner_id, name, quantity, location, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`, id, ownerID, name, quantity, location, now)
	if err != nil {
		return "", fmt.Errorf("item insert: %w", err)
	}
	return id, nil
}

func (r *CaptureRepo) GetItem(ctx context.Context, ownerID, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, quantity, location, created_at FROM items WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	var (
		it       Item
		location sql.NullString
	)
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Quantity, &location, &it.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("item get: %w", err)
	}
	it.Location = nullStr(location)
	return &it, nil
}

func (r *CaptureRepo) InsertSourceDocument(ctx context.Context, ownerID, title string, url *string, content string, now time.Time) (string, error) {
	id := NewID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO source_documents (id, owner_id, title, url, content, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`, id, ownerID, title, url, content, now)
	if err != nil {
		return "", fmt.Errorf("source document insert: %w", err)
	}
	return id, nil
}

func (r *CaptureRepo) GetSourceDocument(ctx context.Context, ownerID, id string) (*SourceDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, url, content, created_at FROM source_documents WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	var (
		d   SourceDocument
		url sql.NullString
	)
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &url, &d.Content, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("source document get: %w", err)
	}
	d.URL = nullStr(url)
	return &d, nil
}
