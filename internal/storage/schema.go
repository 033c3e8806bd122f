package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			energy INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'backlog',

			epic_id TEXT,
			routine_id TEXT,
			routine_occurrence DATETIME,

			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			started_at DATETIME,
			completed_at DATETIME,
			deleted_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS checkpoints (
			id TEXT PRIMARY KEY,
			quest_id TEXT NOT NULL,
			title TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME NOT NULL,

			FOREIGN KEY(quest_id) REFERENCES quests(id)
		);`,
		`CREATE TABLE IF NOT EXISTS epics (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			initiative_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			completed_at DATETIME,
			deleted_at DATETIME
		);`,
		// Budget only. Spent is derived from completed quests at read time,
		// never stored, so retroactive quest edits cannot leave it stale.
		`CREATE TABLE IF NOT EXISTS energy_budgets (
			owner_id TEXT NOT NULL,
			day TEXT NOT NULL,
			budget INTEGER NOT NULL DEFAULT 5,
			PRIMARY KEY (owner_id, day)
		);`,
		`CREATE TABLE IF NOT EXISTS routines (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			schedule TEXT NOT NULL,
			time_of_day TEXT,
			energy INTEGER NOT NULL DEFAULT 1,
			initiative_id TEXT,
			active INTEGER NOT NULL DEFAULT 1,
			next_due DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS inbox_items (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			content TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			attachments TEXT,
			created_at DATETIME NOT NULL,
			deleted_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			location TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS source_documents (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT,
			content TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_owner_status ON quests(owner_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_owner_completed_at ON quests(owner_id, completed_at);`,
		// Spawn idempotency: one quest per routine occurrence.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_quests_routine_occurrence ON quests(routine_id, routine_occurrence)
			WHERE routine_id IS NOT NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_quest_id ON checkpoints(quest_id, sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_routines_next_due ON routines(next_due);`,
		`CREATE INDEX IF NOT EXISTS idx_inbox_owner ON inbox_items(owner_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
