package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
	"github.com/oklog/ulid/v2"
)

// ErrExportStorageDisabled is returned by Archive when no object store is configured
var ErrExportStorageDisabled = errors.New("export storage is not configured")

// ExportStore persists generated files. Implemented by repository.S3ExportStore.
type ExportStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type WeightService struct {
	entryRepo domain.WeightRepository
	goalRepo  domain.WeightGoalRepository
	store     ExportStore
	metrics   *metrics.Manager
	log       logger.Logger
	now       func() time.Time
}

// NewWeightService creates a weight service. store may be nil.
func NewWeightService(
	entryRepo domain.WeightRepository,
	goalRepo domain.WeightGoalRepository,
	store ExportStore,
	metricsManager *metrics.Manager,
	log logger.Logger,
) *WeightService {
	return &WeightService{
		entryRepo: entryRepo,
		goalRepo:  goalRepo,
		store:     store,
		metrics:   metricsManager,
		log:       log,
		now:       time.Now,
	}
}

// WeightUpdate carries the fields a client may change. Nil fields are left alone.
type WeightUpdate struct {
	Date   *time.Time
	Weight *float64
	Unit   *string
	Notes  *string
}

// ExportArchive describes an uploaded CSV export
type ExportArchive struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Entries  int    `json:"entries"`
}

// List returns the user's entries, newest first
func (s *WeightService) List(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.WeightEntry{}
	}
	return entries, nil
}

func (s *WeightService) Add(ctx context.Context, entry *domain.WeightEntry) error {
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}
	if entry.Unit == "" {
		entry.Unit = domain.UnitKg
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to add weight entry: %w", err)
	}
	s.metrics.WeightEntryAdded()
	return nil
}

func (s *WeightService) Update(ctx context.Context, userID, id string, upd WeightUpdate) (*domain.WeightEntry, error) {
	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Date != nil {
		entry.Date = *upd.Date
	}
	if upd.Weight != nil {
		entry.Weight = *upd.Weight
	}
	if upd.Unit != nil {
		entry.Unit = *upd.Unit
	}
	if upd.Notes != nil {
		entry.Notes = *upd.Notes
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *WeightService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.entryRepo.Delete(ctx, id)
}

func (s *WeightService) Stats(ctx context.Context, userID string) (domain.WeightStats, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return domain.WeightStats{}, fmt.Errorf("failed to list weight entries: %w", err)
	}
	return stats.Summarize(entries), nil
}

// Goal returns the active goal, or domain.ErrNoActiveGoal
func (s *WeightService) Goal(ctx context.Context, userID string) (*domain.WeightGoal, error) {
	return s.goalRepo.GetActive(ctx, userID)
}

// SetGoal replaces any active goal
func (s *WeightService) SetGoal(ctx context.Context, goal *domain.WeightGoal) error {
	if goal.Unit == "" {
		goal.Unit = domain.UnitKg
	}
	goal.Completed = false
	goal.CompletedAt = nil
	if err := s.goalRepo.ReplaceActive(ctx, goal); err != nil {
		return fmt.Errorf("failed to save weight goal: %w", err)
	}
	return nil
}

func (s *WeightService) DeleteGoal(ctx context.Context, userID string) error {
	return s.goalRepo.DeleteActive(ctx, userID)
}

func (s *WeightService) CompleteGoal(ctx context.Context, userID string) (*domain.WeightGoal, error) {
	return s.goalRepo.CompleteActive(ctx, userID, s.now())
}

// Trend builds the chart payload for a 7, 30 or 90 day window
func (s *WeightService) Trend(ctx context.Context, userID string, days int) (*stats.WeightTrend, error) {
	if err := stats.ValidateWindow(days); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}

	goal, err := s.goalRepo.GetActive(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNoActiveGoal) {
			return nil, fmt.Errorf("failed to load weight goal: %w", err)
		}
		goal = nil
	}

	trend := stats.BuildTrend(entries, goal, days, s.now())
	return &trend, nil
}

// ExportCSV writes the user's history to w and returns the download filename
func (s *WeightService) ExportCSV(ctx context.Context, userID string, w io.Writer) (string, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list weight entries: %w", err)
	}
	if err := stats.WriteWeightCSV(w, entries); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	s.metrics.Exported("download")
	return stats.ExportFilename(s.now()), nil
}

// Archive uploads the CSV export to object storage under exports/{user}/{ulid}/
func (s *WeightService) Archive(ctx context.Context, userID string) (*ExportArchive, error) {
	if s.store == nil {
		return nil, ErrExportStorageDisabled
	}

	entries, err := s.entryRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}

	var buf bytes.Buffer
	if err := stats.WriteWeightCSV(&buf, entries); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	now := s.now()
	filename := stats.ExportFilename(now)
	key := strings.Join([]string{"exports", userID, newULID(now), filename}, "/")

	url, err := s.store.Put(ctx, key, buf.Bytes(), "text/csv")
	if err != nil {
		return nil, err
	}

	s.metrics.Exported("s3")
	s.log.WithField("user_id", userID).WithField("key", key).Info("weight export archived")
	return &ExportArchive{Key: key, URL: url, Filename: filename, Entries: len(entries)}, nil
}

func (s *WeightService) owned(ctx context.Context, userID, id string) (*domain.WeightEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

// newULID creates a time-ordered unique id
func newULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}
