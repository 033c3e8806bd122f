package storage

import "time"

type Quest struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	Energy      int
	Status      string

	EpicID            *string
	RoutineID         *string
	RoutineOccurrence *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	DeletedAt   *time.Time
}

type Checkpoint struct {
	ID          string
	QuestID     string
	Title       string
	Completed   bool
	SortOrder   int
	CompletedAt *time.Time
	CreatedAt   time.Time
}

type Epic struct {
	ID           string
	OwnerID      string
	Title        string
	Description  *string
	Status       string
	InitiativeID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	DeletedAt    *time.Time
}

// EnergyBudget is the stored budget row only. Spent/remaining are derived by
// the engine from completed quests.
type EnergyBudget struct {
	OwnerID string
	Day     string // YYYY-MM-DD in the account time zone
	Budget  int
}

type Routine struct {
	ID           string
	OwnerID      string
	Name         string
	Description  *string
	Schedule     string
	TimeOfDay    *string
	Energy       int
	InitiativeID *string
	Active       bool
	NextDue      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type InboxItem struct {
	ID          string
	OwnerID     string
	Content     string
	Source      string
	Attachments []string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Body      string
	CreatedAt time.Time
}

type Item struct {
	ID        string
	OwnerID   string
	Name      string
	Quantity  int
	Location  *string
	CreatedAt time.Time
}

type SourceDocument struct {
	ID        string
	OwnerID   string
	Title     string
	URL       *string
	Content   string
	CreatedAt time.Time
}
