package service

import (
	"context"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

type CustomWorkoutService struct {
	workoutRepo domain.CustomWorkoutRepository
	now         func() time.Time
}

func NewCustomWorkoutService(workoutRepo domain.CustomWorkoutRepository) *CustomWorkoutService {
	return &CustomWorkoutService{
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

func (s *CustomWorkoutService) List(ctx context.Context, userID string) ([]*domain.CustomWorkout, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

func (s *CustomWorkoutService) Get(ctx context.Context, userID, id string) (*domain.CustomWorkout, error) {
	return s.workoutRepo.GetByID(ctx, userID, id)
}

func (s *CustomWorkoutService) Create(ctx context.Context, userID string, w *domain.CustomWorkout) error {
	w.UserID = userID
	w.Name = strings.TrimSpace(w.Name)
	w.TimesCompleted = 0
	w.LastCompletedAt = nil
	if w.Exercises == nil {
		w.Exercises = []domain.WorkoutExercise{}
	}
	return s.workoutRepo.Create(ctx, w)
}

// Update replaces name, description and exercises. Completion history is kept.
func (s *CustomWorkoutService) Update(ctx context.Context, userID, id string, w *domain.CustomWorkout) (*domain.CustomWorkout, error) {
	existing, err := s.workoutRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(w.Name)
	existing.Description = w.Description
	existing.Exercises = w.Exercises
	if existing.Exercises == nil {
		existing.Exercises = []domain.WorkoutExercise{}
	}

	if err := s.workoutRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CustomWorkoutService) Delete(ctx context.Context, userID, id string) error {
	return s.workoutRepo.Delete(ctx, userID, id)
}

// Complete records one more completion of the workout
func (s *CustomWorkoutService) Complete(ctx context.Context, userID, id string) (*domain.CustomWorkout, error) {
	return s.workoutRepo.MarkCompleted(ctx, userID, id, s.now())
}
