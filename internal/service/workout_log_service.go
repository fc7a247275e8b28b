package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// quickLogRestShare is the rest share of a quick-logged session. A heuristic, not measured.
	quickLogRestShare = 0.3
)

type WorkoutLogService struct {
	logRepo  domain.WorkoutLogRepository
	userRepo domain.UserRepository
	cache    StatsCache
	metrics  *metrics.Manager
	log      logger.Logger
	now      func() time.Time
}

func NewWorkoutLogService(
	logRepo domain.WorkoutLogRepository,
	userRepo domain.UserRepository,
	cache StatsCache,
	metricsManager *metrics.Manager,
	log logger.Logger,
) *WorkoutLogService {
	return &WorkoutLogService{
		logRepo:  logRepo,
		userRepo: userRepo,
		cache:    cache,
		metrics:  metricsManager,
		log:      log,
		now:      time.Now,
	}
}

// Pagination describes one page of a listing
type Pagination struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Total: total, Pages: pages, Page: page, Limit: limit}
}

// WorkoutLogPage is the listing response shape
type WorkoutLogPage struct {
	Workouts   []*domain.WorkoutLog `json:"workouts"`
	Pagination Pagination           `json:"pagination"`
}

// QuickSet is a set submitted through the quick-log path
type QuickSet struct {
	Weight domain.Numeric
	Reps   domain.Numeric
	Notes  string
}

// QuickLog is a simplified log: total duration plus sets, the server derives the rest
type QuickLog struct {
	ExerciseID   string
	ExerciseName string
	Duration     int
	Date         *time.Time
	Sets         []QuickSet
	Notes        string
}

// List returns a page of the user's logs, newest first
func (s *WorkoutLogService) List(ctx context.Context, filter domain.WorkoutLogFilter) (*WorkoutLogPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, DefaultPageLimit)

	logs, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}
	if logs == nil {
		logs = []*domain.WorkoutLog{}
	}

	return &WorkoutLogPage{
		Workouts:   logs,
		Pagination: NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// Create stores a fully described log as submitted
func (s *WorkoutLogService) Create(ctx context.Context, log *domain.WorkoutLog) error {
	for i := range log.Sets {
		if log.Sets[i].SetNumber == 0 {
			log.Sets[i].SetNumber = i + 1
		}
	}
	if log.EndTime.IsZero() {
		log.EndTime = log.StartTime.Add(time.Duration(log.TotalDuration) * time.Second)
	}
	log.TotalVolume = stats.Volume(log.Sets)

	if err := s.logRepo.Create(ctx, log); err != nil {
		return fmt.Errorf("failed to create workout log: %w", err)
	}

	s.metrics.WorkoutLogged()
	s.invalidate(ctx, log.UserID)
	return nil
}

// CreateQuick expands a QuickLog into a WorkoutLog and records the exercise as recently used
func (s *WorkoutLogService) CreateQuick(ctx context.Context, userID string, q QuickLog) (*domain.WorkoutLog, error) {
	start := s.now()
	if q.Date != nil {
		start = *q.Date
	}

	rest := int(math.Round(float64(q.Duration) * quickLogRestShare))
	sets := make([]domain.SetEntry, len(q.Sets))
	for i, set := range q.Sets {
		sets[i] = domain.SetEntry{
			SetNumber: i + 1,
			Weight:    set.Weight,
			Reps:      set.Reps,
			Completed: true,
			Notes:     set.Notes,
		}
	}

	log := &domain.WorkoutLog{
		UserID:        userID,
		ExerciseID:    q.ExerciseID,
		ExerciseName:  strings.TrimSpace(q.ExerciseName),
		StartTime:     start,
		EndTime:       start.Add(time.Duration(q.Duration) * time.Second),
		TotalDuration: q.Duration,
		RestTime:      rest,
		ActiveTime:    q.Duration - rest,
		Sets:          sets,
		Notes:         q.Notes,
	}
	if err := s.Create(ctx, log); err != nil {
		return nil, err
	}

	if q.ExerciseID != "" {
		if err := s.userRepo.PushRecent(ctx, userID, q.ExerciseID, domain.MaxRecentExercises); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("failed to record recent exercise")
		}
	}
	return log, nil
}

// Get returns a log owned by userID
func (s *WorkoutLogService) Get(ctx context.Context, userID, id string) (*domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return log, nil
}

// Delete removes a log owned by userID
func (s *WorkoutLogService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.logRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete workout log: %w", err)
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *WorkoutLogService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUserStats(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to invalidate stats cache")
	}
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
