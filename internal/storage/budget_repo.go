package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type BudgetRepo struct {
	db DBTX
}

func NewBudgetRepo(db DBTX) *BudgetRepo {
	return &BudgetRepo{db: db}
}

// Get returns the stored budget row for the day, or nil. Absence is not an
// error: the engine substitutes the default without persisting anything.
func (r *BudgetRepo) Get(ctx context.Context, ownerID, day string) (*EnergyBudget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, day, budget FROM energy_budgets WHERE owner_id = ? AND day = ?
	`, ownerID, day)
	var b EnergyBudget
	if err := row.Scan(&b.OwnerID, &b.Day, &b.Budget); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("budget get: %w", err)
	}
	return &b, nil
}

// Upsert writes only the budget column; there is nothing else to write.
func (r *BudgetRepo) Upsert(ctx context.Context, ownerID, day string, budget int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO energy_budgets (owner_id, day, budget) VALUES (?, ?, ?)
		ON CONFLICT(owner_id, day) DO UPDATE SET budget = excluded.budget
	`, ownerID, day, budget)
	if err != nil {
		return fmt.Errorf("budget upsert: %w", err)
	}
	return nil
}

func (r *BudgetRepo) List(ctx context.Context, ownerID string) ([]EnergyBudget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner_id, day, budget FROM energy_budgets WHERE owner_id = ? ORDER BY day ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("budget list: %w", err)
	}
	defer rows.Close()

	var out []EnergyBudget
	for rows.Next() {
		var b EnergyBudget
		if err := rows.Scan(&b.OwnerID, &b.Day, &b.Budget); err != nil {
			return nil, fmt.Errorf("budget scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("budget rows: %w", err)
	}
	return out, nil
}
