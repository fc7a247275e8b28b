package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

const DefaultExercisePageLimit = 20

type ExerciseService struct {
	exerciseRepo domain.ExerciseRepository
	userRepo     domain.UserRepository
}

func NewExerciseService(exerciseRepo domain.ExerciseRepository, userRepo domain.UserRepository) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

// ExercisePage is the listing response shape
type ExercisePage struct {
	Exercises  []*domain.Exercise `json:"exercises"`
	Pagination Pagination         `json:"pagination"`
}

func (s *ExerciseService) List(ctx context.Context, filter domain.ExerciseFilter) (*ExercisePage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, DefaultExercisePageLimit)

	exercises, total, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if exercises == nil {
		exercises = []*domain.Exercise{}
	}
	return &ExercisePage{
		Exercises:  exercises,
		Pagination: NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

func (s *ExerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.exerciseRepo.GetByID(ctx, id)
}

// CreateCustom stores a user-defined exercise
func (s *ExerciseService) CreateCustom(ctx context.Context, userID string, ex *domain.Exercise) error {
	ex.Name = strings.TrimSpace(ex.Name)
	ex.IsCustom = true
	ex.CreatedBy = userID
	if ex.Difficulty == "" {
		ex.Difficulty = domain.DifficultyBeginner
	}
	return s.exerciseRepo.Create(ctx, ex)
}

// Favorites resolves the user's favorite exercises in stored order
func (s *ExerciseService) Favorites(ctx context.Context, userID string) ([]*domain.Exercise, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.FavoriteExercises)
}

func (s *ExerciseService) AddFavorite(ctx context.Context, userID, exerciseID string) error {
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return err
	}
	return s.userRepo.AddFavorite(ctx, userID, exerciseID)
}

func (s *ExerciseService) RemoveFavorite(ctx context.Context, userID, exerciseID string) error {
	return s.userRepo.RemoveFavorite(ctx, userID, exerciseID)
}

// Recent resolves the recently used exercises, most recent first
func (s *ExerciseService) Recent(ctx context.Context, userID string) ([]*domain.Exercise, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.RecentExercises)
}

// MarkRecent moves the exercise to the front of the recent list
func (s *ExerciseService) MarkRecent(ctx context.Context, userID, exerciseID string) error {
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return err
	}
	return s.userRepo.PushRecent(ctx, userID, exerciseID, domain.MaxRecentExercises)
}

func (s *ExerciseService) resolve(ctx context.Context, ids []string) ([]*domain.Exercise, error) {
	if len(ids) == 0 {
		return []*domain.Exercise{}, nil
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercises: %w", err)
	}
	return exercises, nil
}
