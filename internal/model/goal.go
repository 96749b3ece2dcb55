package model

import (
	"time"
)

type Category string

const (
	CategoryPhysicalHealth Category = "PHYSICAL_HEALTH"
	CategoryMentalHealth   Category = "MENTAL_HEALTH"
	CategoryNutrition      Category = "NUTRITION"
	CategorySleep          Category = "SLEEP"
	CategoryWellbeing      Category = "WELLBEING"
)

type GoalType string

const (
	GoalTypeDaily   GoalType = "daily"
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeSingle  GoalType = "single"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
	GoalStatusCancelled GoalStatus = "cancelled"
)

var (
	categories   = newEnumTable("category", CategoryPhysicalHealth, CategoryMentalHealth, CategoryNutrition, CategorySleep, CategoryWellbeing)
	goalTypes    = newEnumTable("type", GoalTypeDaily, GoalTypeWeekly, GoalTypeMonthly, GoalTypeSingle)
	difficulties = newEnumTable("difficulty", DifficultyEasy, DifficultyMedium, DifficultyHard)
	statuses     = newEnumTable("status", GoalStatusActive, GoalStatusCompleted, GoalStatusArchived, GoalStatusCancelled)
)

func ParseCategory(s string) (Category, error)     { return categories.parse(s) }
func ParseGoalType(s string) (GoalType, error)     { return goalTypes.parse(s) }
func ParseDifficulty(s string) (Difficulty, error) { return difficulties.parse(s) }
func ParseGoalStatus(s string) (GoalStatus, error) { return statuses.parse(s) }

func (c Category) String() string   { return categories.wire(c) }
func (t GoalType) String() string   { return goalTypes.wire(t) }
func (d Difficulty) String() string { return difficulties.wire(d) }
func (s GoalStatus) String() string { return statuses.wire(s) }

// Known reports whether t is one of the declared goal types.
// Unknown types are stored as-is and fall into the daily progress bucket.
func (t GoalType) Known() bool { return goalTypes.valid(t) }

type Frequency struct {
	Periodicity    string
	TimesPerPeriod int
}

type Reward struct {
	// Points may be negative; a negative reward is a penalty.
	Points *int
	Badge  string
}

type Progress struct {
	Completed int
	Total     int
	Unit      string
}

// Goal is a gamified wellness target owned by a user.
// Empty enum fields mean the value was not provided.
type Goal struct {
	ID            int64
	UserID        string
	Title         string
	Description   string
	Category      Category
	Type          GoalType
	StartDate     *time.Time
	EndDate       *time.Time
	Frequency     *Frequency
	Difficulty    Difficulty
	Reward        *Reward
	Status        GoalStatus
	Notifications *bool
	Progress      *Progress
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCompleted reports whether progress has reached its total.
func (g *Goal) IsCompleted() bool {
	return g.Progress != nil && g.Progress.Completed >= g.Progress.Total
}
