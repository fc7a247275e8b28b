package domain

import (
	"context"
	"time"
)

// Weight units accepted by the API
const (
	UnitKg  = "kg"
	UnitLbs = "lbs"
)

// KgPerLb converts pounds to kilograms
const KgPerLb = 0.453592

// WeightEntry is one bodyweight measurement
type WeightEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	Date      time.Time `json:"date" bson:"date"`
	Weight    float64   `json:"weight" bson:"weight"`
	Unit      string    `json:"unit" bson:"unit"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// WeightGoal is a target bodyweight with a deadline. A user has at most one active (not completed) goal.
type WeightGoal struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	UserID       string     `json:"userId" bson:"user_id"`
	TargetWeight float64    `json:"targetWeight" bson:"target_weight"`
	TargetDate   time.Time  `json:"targetDate" bson:"target_date"`
	Unit         string     `json:"unit" bson:"unit"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Completed    bool       `json:"completed" bson:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
}

// WeightStats summarises a user's weight history
type WeightStats struct {
	CurrentWeight   float64 `json:"currentWeight"`
	StartingWeight  float64 `json:"startingWeight"`
	WeightChange    float64 `json:"weightChange"`
	WeightChangePct float64 `json:"weightChangePct"`
	LowestWeight    float64 `json:"lowestWeight"`
	HighestWeight   float64 `json:"highestWeight"`
	Entries         int     `json:"entries"`
	Unit            string  `json:"unit"`
}

// WeightRepository handles persistence of weight entries
type WeightRepository interface {
	Create(ctx context.Context, entry *WeightEntry) error
	GetByID(ctx context.Context, id string) (*WeightEntry, error)
	// ListByUser returns entries sorted by date descending. A nil since returns the full history.
	ListByUser(ctx context.Context, userID string, since *time.Time) ([]*WeightEntry, error)
	Update(ctx context.Context, entry *WeightEntry) error
	Delete(ctx context.Context, id string) error
}

// WeightGoalRepository handles persistence of weight goals
type WeightGoalRepository interface {
	// GetActive returns ErrNoActiveGoal when the user has none
	GetActive(ctx context.Context, userID string) (*WeightGoal, error)
	// ReplaceActive deletes any active goal for the user and stores goal in its place
	ReplaceActive(ctx context.Context, goal *WeightGoal) error
	DeleteActive(ctx context.Context, userID string) error
	CompleteActive(ctx context.Context, userID string, at time.Time) (*WeightGoal, error)
}
