package domain

import (
	"context"
	"errors"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// WorkoutExercise is a planned exercise inside a custom workout
type WorkoutExercise struct {
	ExerciseID   string  `json:"exerciseId" bson:"exercise_id"`
	ExerciseName string  `json:"exerciseName" bson:"exercise_name"`
	Sets         int     `json:"sets" bson:"sets"`
	Reps         int     `json:"reps" bson:"reps"`
	Weight       float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	RestSeconds  int     `json:"restSeconds,omitempty" bson:"rest_seconds,omitempty"`
}

// CustomWorkout is a user-built routine that can be completed repeatedly
type CustomWorkout struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	UserID          string            `json:"userId" bson:"user_id"`
	Name            string            `json:"name" bson:"name"`
	Description     string            `json:"description" bson:"description"`
	Exercises       []WorkoutExercise `json:"exercises" bson:"exercises"`
	TimesCompleted  int               `json:"timesCompleted" bson:"times_completed"`
	LastCompletedAt *time.Time        `json:"lastCompletedAt,omitempty" bson:"last_completed_at,omitempty"`
	CreatedAt       time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updated_at"`
}

type CustomWorkoutRepository interface {
	Create(ctx context.Context, workout *CustomWorkout) error
	GetByID(ctx context.Context, userID, id string) (*CustomWorkout, error)
	ListByUser(ctx context.Context, userID string) ([]*CustomWorkout, error)
	Update(ctx context.Context, workout *CustomWorkout) error
	Delete(ctx context.Context, userID, id string) error
	// MarkCompleted increments the completion counter and stamps the completion time
	MarkCompleted(ctx context.Context, userID, id string, at time.Time) (*CustomWorkout, error)
}
