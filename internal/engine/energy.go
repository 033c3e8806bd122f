package engine

import (
	"context"
	"time"
)

// DefaultDailyBudget applies when no budget row exists for a day.
const DefaultDailyBudget = 5

// DayBudget is the read model for a single calendar day. Spent is always
// derived from completed quests, never read from storage.
type DayBudget struct {
	Day         string
	Budget      int
	Spent       int
	Remaining   int
	OverBudget  bool
	PercentUsed float64
}

// GetBudget reports the day's budget and derived usage. A read never creates
// state: when no row exists the default is returned without persisting it.
func (s *Service) GetBudget(ctx context.Context, owner, date string) (*DayBudget, error) {
	from, to, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}

	budget := DefaultDailyBudget
	stored, err := s.budgets.Get(ctx, owner, date)
	if err != nil {
		return nil, storageErr("get budget", err)
	}
	if stored != nil {
		budget = stored.Budget
	}

	spent, err := s.quests.SumEnergyCompletedBetween(ctx, owner, from, to)
	if err != nil {
		return nil, storageErr("get budget", err)
	}

	return &DayBudget{
		Day:         date,
		Budget:      budget,
		Spent:       spent,
		Remaining:   budget - spent,
		OverBudget:  spent > budget,
		PercentUsed: float64(spent) / float64(budget),
	}, nil
}

// SetBudget upserts the user-set budget for a day. Only the budget field
// exists in storage; spent is never written anywhere.
func (s *Service) SetBudget(ctx context.Context, owner, date string, budget int) (*DayBudget, error) {
	if _, _, err := s.dayBounds(date); err != nil {
		return nil, err
	}
	if budget < 1 || budget > 10 {
		return nil, ValidationError{Field: "budget", Reason: "must be between 1 and 10"}
	}
	if err := s.budgets.Upsert(ctx, owner, date, budget); err != nil {
		return nil, storageErr("set budget", err)
	}
	return s.GetBudget(ctx, owner, date)
}

// dayBounds converts a YYYY-MM-DD date into [start, next day start). The day
// is anchored in the account's configured time zone, but the bounds are
// returned in UTC: stored timestamps are UTC, and sqlite compares the bound
// text lexicographically, so mixed offsets would mis-assign completions near
// midnight.
func (s *Service) dayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return start.UTC(), start.AddDate(0, 0, 1).UTC(), nil
}

// Today returns the current date in the account time zone, formatted for the
// budget API.
func (s *Service) Today() string {
	return time.Now().In(s.loc).Format("2006-01-02")
}
