package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("exercise name already exists")
)

// Difficulty levels shared by exercises and templates
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// TargetMuscles splits worked muscles into primary and secondary movers
type TargetMuscles struct {
	Primary   []string `json:"primary" bson:"primary"`
	Secondary []string `json:"secondary" bson:"secondary"`
}

// ExerciseMedia links demonstration media
type ExerciseMedia struct {
	ImageURL string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty" bson:"video_url,omitempty"`
}

// Exercise represents a move in the library. Custom exercises carry the creating user.
type Exercise struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Name          string        `json:"name" bson:"name"` // Unique Index
	Description   string        `json:"description" bson:"description"`
	Instructions  []string      `json:"instructions" bson:"instructions"`
	TargetMuscles TargetMuscles `json:"target_muscles" bson:"target_muscles"`
	Category      string        `json:"category" bson:"category"`           // e.g. "Strength", "Cardio"
	MovementType  string        `json:"movement_type" bson:"movement_type"` // e.g. "Compound", "Isolation"
	Equipment     []string      `json:"equipment" bson:"equipment"`
	Difficulty    string        `json:"difficulty" bson:"difficulty"`
	Media         ExerciseMedia `json:"media" bson:"media"`
	IsCustom      bool          `json:"is_custom" bson:"is_custom"`
	CreatedBy     string        `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

// ExerciseFilter mirrors the /exercises query parameters. Empty fields do not filter.
type ExerciseFilter struct {
	Category     string
	MovementType string
	Equipment    string
	Difficulty   string
	TargetMuscle string
	Search       string
	Page         int // 1-based
	Limit        int
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	// GetByIDs preserves the order of ids and skips unknown ones
	GetByIDs(ctx context.Context, ids []string) ([]*Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]*Exercise, int64, error)
}
