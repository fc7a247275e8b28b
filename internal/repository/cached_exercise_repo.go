package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/coocood/freecache"
)

const exerciseCacheTTL = 10 * time.Minute

// CachedExerciseRepository keeps single-exercise lookups in process memory.
// Exercises are read far more often than created and custom exercises are never edited,
// so entries only need the TTL to expire.
type CachedExerciseRepository struct {
	domain.ExerciseRepository
	cache *freecache.Cache
}

// NewCachedExerciseRepository wraps repo with a freecache of sizeBytes
func NewCachedExerciseRepository(repo domain.ExerciseRepository, sizeBytes int) *CachedExerciseRepository {
	return &CachedExerciseRepository{
		ExerciseRepository: repo,
		cache:              freecache.NewCache(sizeBytes),
	}
}

// GetByID serves from memory before falling back to the wrapped repository
func (r *CachedExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	key := []byte(id)
	if data, err := r.cache.Get(key); err == nil {
		var ex domain.Exercise
		if json.Unmarshal(data, &ex) == nil {
			return &ex, nil
		}
	}

	ex, err := r.ExerciseRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ex); err == nil {
		_ = r.cache.Set(key, data, int(exerciseCacheTTL.Seconds()))
	}
	return ex, nil
}

// Create stores the exercise and primes the cache
func (r *CachedExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	if err := r.ExerciseRepository.Create(ctx, ex); err != nil {
		return err
	}
	if data, err := json.Marshal(ex); err == nil {
		_ = r.cache.Set([]byte(ex.ID), data, int(exerciseCacheTTL.Seconds()))
	}
	return nil
}

// HitRate reports the cache hit ratio since start
func (r *CachedExerciseRepository) HitRate() float64 {
	return r.cache.HitRate()
}
