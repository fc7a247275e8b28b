package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTemplateNotFound = errors.New("workout template not found")
)

// TemplateFocus weights the training goals of a plan
type TemplateFocus struct {
	Strength    bool `json:"strength" bson:"strength"`
	Hypertrophy bool `json:"hypertrophy" bson:"hypertrophy"`
	Endurance   bool `json:"endurance" bson:"endurance"`
	Mobility    bool `json:"mobility" bson:"mobility"`
}

// TemplateExercise is a prescribed exercise within a template day
type TemplateExercise struct {
	ExerciseName string   `json:"exercise_name" bson:"exercise_name"`
	Sets         string   `json:"sets" bson:"sets"`           // free text, e.g. "3x8-12"
	Intensity    string   `json:"intensity" bson:"intensity"` // e.g. "RPE 8"
	Notes        string   `json:"notes,omitempty" bson:"notes,omitempty"`
	Variations   []string `json:"variations,omitempty" bson:"variations,omitempty"`
}

// TemplateDay is one training day of a template
type TemplateDay struct {
	DayNumber int                `json:"day_number" bson:"day_number"`
	Exercises []TemplateExercise `json:"exercises" bson:"exercises"`
	DayNotes  string             `json:"day_notes,omitempty" bson:"day_notes,omitempty"`
}

// WorkoutTemplate is a user's multi-day training plan
type WorkoutTemplate struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	UserID          string        `json:"user_id" bson:"user_id"`
	PlanName        string        `json:"plan_name" bson:"plan_name"`
	Description     string        `json:"description" bson:"description"`
	Time            string        `json:"time" bson:"time"` // session length, e.g. "45-60 min"
	DifficultyLevel string        `json:"difficulty_level" bson:"difficulty_level"`
	Focus           TemplateFocus `json:"focus" bson:"focus"`
	Tags            []string      `json:"tags" bson:"tags"`
	Days            []TemplateDay `json:"days" bson:"days"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// TemplateRepository stores templates; every query is scoped to the owning user
type TemplateRepository interface {
	Create(ctx context.Context, template *WorkoutTemplate) error
	GetByID(ctx context.Context, userID, id string) (*WorkoutTemplate, error)
	ListByUser(ctx context.Context, userID string) ([]*WorkoutTemplate, error)
	Update(ctx context.Context, template *WorkoutTemplate) error
	Delete(ctx context.Context, userID, id string) error
}
