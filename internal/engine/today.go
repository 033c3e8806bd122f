package engine

import (
	"context"

	"github.com/getaltair/altair-sub003/internal/storage"
)

// TodayView is the read-only aggregate for the day screen: budget, the
// active quest, startable backlog, routine-spawned quests due today, and
// completions. It performs no writes and is composed purely from the other
// components' reads.
type TodayView struct {
	Day             string
	Budget          *DayBudget
	Active          *storage.Quest
	Backlog         []storage.Quest
	DueFromRoutines []storage.Quest
	CompletedToday  []storage.Quest
}

func (s *Service) TodayView(ctx context.Context, owner, date string) (*TodayView, error) {
	from, to, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}

	budget, err := s.GetBudget(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	active, err := s.ActiveQuest(ctx, owner)
	if err != nil {
		return nil, err
	}
	backlog, err := s.ListQuestsByStatus(ctx, owner, StatusBacklog)
	if err != nil {
		return nil, err
	}
	spawned, err := s.quests.ListRoutineSpawnedBetween(ctx, owner, from, to)
	if err != nil {
		return nil, storageErr("today view", err)
	}
	completed, err := s.quests.ListCompletedBetween(ctx, owner, from, to)
	if err != nil {
		return nil, storageErr("today view", err)
	}

	return &TodayView{
		Day:             date,
		Budget:          budget,
		Active:          active,
		Backlog:         backlog,
		DueFromRoutines: spawned,
		CompletedToday:  completed,
	}, nil
}
