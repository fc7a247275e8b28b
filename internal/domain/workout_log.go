package domain

import (
	"context"
	"time"
)

// SetEntry is a single logged set. SetNumber is 1-based and follows submission order.
type SetEntry struct {
	SetNumber int     `json:"setNumber" bson:"set_number"`
	Weight    Numeric `json:"weight" bson:"weight"`
	Reps      Numeric `json:"reps" bson:"reps"`
	Completed bool    `json:"completed" bson:"completed"`
	Notes     string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// WorkoutLog is a completed exercise session. Durations are in seconds.
type WorkoutLog struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	UserID        string     `json:"userId" bson:"user_id"`
	ExerciseID    string     `json:"exerciseId" bson:"exercise_id"`
	ExerciseName  string     `json:"exerciseName" bson:"exercise_name"`
	StartTime     time.Time  `json:"startTime" bson:"start_time"`
	EndTime       time.Time  `json:"endTime" bson:"end_time"`
	TotalDuration int        `json:"totalDuration" bson:"total_duration"`
	RestTime      int        `json:"restTime" bson:"rest_time"`
	ActiveTime    int        `json:"activeTime" bson:"active_time"`
	Sets          []SetEntry `json:"sets" bson:"sets"`
	Notes         string     `json:"notes" bson:"notes"`
	TotalVolume   float64    `json:"totalVolume" bson:"total_volume"` // sum(weight * reps), stored at write time
	CreatedAt     time.Time  `json:"createdAt" bson:"created_at"`
}

// WorkoutLogFilter narrows a paginated workout log listing
type WorkoutLogFilter struct {
	UserID     string
	ExerciseID string
	From       *time.Time
	To         *time.Time
	Page       int // 1-based
	Limit      int
}

// WorkoutLogRepository handles persistence of workout logs
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *WorkoutLog) error
	GetByID(ctx context.Context, id string) (*WorkoutLog, error)
	// List returns one page of logs (newest first) and the total match count
	List(ctx context.Context, filter WorkoutLogFilter) ([]*WorkoutLog, int64, error)
	// ListByDateRange returns every log of a user with start_time in [from, to], newest first
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*WorkoutLog, error)
	Delete(ctx context.Context, id string) error
	// UpdateVolume rewrites the stored total_volume of a log
	UpdateVolume(ctx context.Context, id string, volume float64) error
	// ForEach streams every log in the collection, used by maintenance scripts
	ForEach(ctx context.Context, fn func(*WorkoutLog) error) error
}
