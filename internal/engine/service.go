package engine

import (
	"database/sql"
	"sync"
	"time"

	"github.com/getaltair/altair-sub003/internal/storage"
)

// Service is the guidance workflow engine: quest lifecycle, checkpoints,
// energy budgets, routines, and inbox triage over a single entity store.
// No mutable state is held between calls beyond the per-owner start locks.
type Service struct {
	db       *sql.DB
	loc      *time.Location
	quests   *storage.QuestRepo
	points   *storage.CheckpointRepo
	epics    *storage.EpicRepo
	budgets  *storage.BudgetRepo
	routines *storage.RoutineRepo
	inbox    *storage.InboxRepo
	captures *storage.CaptureRepo

	// Serializes the check-then-act in StartQuest per owner. SQLite's single
	// writer already orders the transactions; the lock keeps WIP=1 correct
	// independent of the storage layer's isolation.
	startLocks sync.Map // owner id -> *sync.Mutex
}

// NewService builds a Service. loc sets the calendar-day boundary zone for
// energy accounting; nil means the system's local zone.
func NewService(db *sql.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		db:       db,
		loc:      loc,
		quests:   storage.NewQuestRepo(db),
		points:   storage.NewCheckpointRepo(db),
		epics:    storage.NewEpicRepo(db),
		budgets:  storage.NewBudgetRepo(db),
		routines: storage.NewRoutineRepo(db),
		inbox:    storage.NewInboxRepo(db),
		captures: storage.NewCaptureRepo(db),
	}
}

func (s *Service) QuestRepo() *storage.QuestRepo     { return s.quests }
func (s *Service) BudgetRepo() *storage.BudgetRepo   { return s.budgets }
func (s *Service) CaptureRepo() *storage.CaptureRepo { return s.captures }

func (s *Service) ownerLock(owner string) *sync.Mutex {
	v, _ := s.startLocks.LoadOrStore(owner, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *Service) now() time.Time {
	return time.Now().UTC()
}
