package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// in-memory implementations of the repository ports

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID != "" && u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) UpdateFirebaseUID(_ context.Context, userID, firebaseUID string) error {
	return r.mutate(userID, func(u *domain.User) { u.FirebaseUID = firebaseUID })
}

func (r *fakeUserRepo) AddFavorite(_ context.Context, userID, exerciseID string) error {
	return r.mutate(userID, func(u *domain.User) {
		for _, id := range u.FavoriteExercises {
			if id == exerciseID {
				return
			}
		}
		u.FavoriteExercises = append(u.FavoriteExercises, exerciseID)
	})
}

func (r *fakeUserRepo) RemoveFavorite(_ context.Context, userID, exerciseID string) error {
	return r.mutate(userID, func(u *domain.User) {
		u.FavoriteExercises = without(u.FavoriteExercises, exerciseID)
	})
}

func (r *fakeUserRepo) PushRecent(_ context.Context, userID, exerciseID string, max int) error {
	return r.mutate(userID, func(u *domain.User) {
		recent := append([]string{exerciseID}, without(u.RecentExercises, exerciseID)...)
		if len(recent) > max {
			recent = recent[:max]
		}
		u.RecentExercises = recent
	})
}

func (r *fakeUserRepo) mutate(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(u)
	return nil
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*domain.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Save(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.TokenHash] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) ByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[hash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRefreshTokenRepo) MarkRotated(_ context.Context, hash, replacedBy string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[hash]
	if !ok || t.RevokedAt != nil {
		return false, nil
	}
	t.RevokedAt = &at
	t.ReplacedBy = replacedBy
	return true, nil
}

func (r *fakeRefreshTokenRepo) RevokeFamily(_ context.Context, family string, at time.Time) error {
	r.revokeWhere(func(t *domain.RefreshToken) bool { return t.Family == family }, at)
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeUser(_ context.Context, userID string, at time.Time) error {
	r.revokeWhere(func(t *domain.RefreshToken) bool { return t.UserID == userID }, at)
	return nil
}

func (r *fakeRefreshTokenRepo) revokeWhere(match func(*domain.RefreshToken) bool, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if match(t) && t.RevokedAt == nil {
			t.RevokedAt = &at
		}
	}
}

type fakeWorkoutLogRepo struct {
	mu   sync.RWMutex
	seq  int
	logs []*domain.WorkoutLog
	// rangeCalls counts ListByDateRange invocations
	rangeCalls int
	failRange  error
}

func (r *fakeWorkoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	log.ID = fmt.Sprintf("log-%d", r.seq)
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeWorkoutLogRepo) GetByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeWorkoutLogRepo) List(_ context.Context, filter domain.WorkoutLogFilter) ([]*domain.WorkoutLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID != filter.UserID {
			continue
		}
		if filter.ExerciseID != "" && l.ExerciseID != filter.ExerciseID {
			continue
		}
		if filter.From != nil && l.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.StartTime.After(*filter.To) {
			continue
		}
		matched = append(matched, l)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].StartTime.After(matched[j].StartTime) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []*domain.WorkoutLog{}, total, nil
	}
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], total, nil
}

func (r *fakeWorkoutLogRepo) ListByDateRange(_ context.Context, userID string, from, to time.Time) ([]*domain.WorkoutLog, error) {
	r.mu.Lock()
	r.rangeCalls++
	r.mu.Unlock()
	if r.failRange != nil {
		return nil, r.failRange
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID == userID && !l.StartTime.Before(from) && !l.StartTime.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.logs {
		if l.ID == id {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeWorkoutLogRepo) UpdateVolume(_ context.Context, id string, volume float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			l.TotalVolume = volume
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeWorkoutLogRepo) ForEach(_ context.Context, fn func(*domain.WorkoutLog) error) error {
	r.mu.RLock()
	logs := append([]*domain.WorkoutLog(nil), r.logs...)
	r.mu.RUnlock()
	for _, l := range logs {
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}

type fakeWeightRepo struct {
	mu      sync.Mutex
	seq     int
	entries []*domain.WeightEntry
}

func (r *fakeWeightRepo) Create(_ context.Context, entry *domain.WeightEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.ID = fmt.Sprintf("w-%d", r.seq)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeWeightRepo) GetByID(_ context.Context, id string) (*domain.WeightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeWeightRepo) ListByUser(_ context.Context, userID string, since *time.Time) ([]*domain.WeightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.WeightEntry
	for _, e := range r.entries {
		if e.UserID == userID && (since == nil || !e.Date.Before(*since)) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeWeightRepo) Update(_ context.Context, entry *domain.WeightEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == entry.ID {
			cp := *entry
			r.entries[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeWeightRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeGoalRepo struct {
	mu    sync.Mutex
	goals map[string]*domain.WeightGoal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: map[string]*domain.WeightGoal{}}
}

func (r *fakeGoalRepo) GetActive(_ context.Context, userID string) (*domain.WeightGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[userID]
	if !ok {
		return nil, domain.ErrNoActiveGoal
	}
	return g, nil
}

func (r *fakeGoalRepo) ReplaceActive(_ context.Context, goal *domain.WeightGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal.ID = "goal-" + goal.UserID
	r.goals[goal.UserID] = goal
	return nil
}

func (r *fakeGoalRepo) DeleteActive(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.goals, userID)
	return nil
}

func (r *fakeGoalRepo) CompleteActive(_ context.Context, userID string, at time.Time) (*domain.WeightGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[userID]
	if !ok {
		return nil, domain.ErrNoActiveGoal
	}
	delete(r.goals, userID)
	g.Completed = true
	g.CompletedAt = &at
	return g, nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[string]*domain.Exercise
}

func newFakeExerciseRepo(exercises ...*domain.Exercise) *fakeExerciseRepo {
	r := &fakeExerciseRepo{exercises: map[string]*domain.Exercise{}}
	for _, ex := range exercises {
		r.exercises[ex.ID] = ex
	}
	return r
}

func (r *fakeExerciseRepo) Create(_ context.Context, ex *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.Name == ex.Name {
			return domain.ErrDuplicateExercise
		}
	}
	ex.ID = fmt.Sprintf("ex-%d", len(r.exercises)+1)
	r.exercises[ex.ID] = ex
	return nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	return ex, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Exercise{}
	for _, id := range ids {
		if ex, ok := r.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, filter domain.ExerciseFilter) ([]*domain.Exercise, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Exercise
	for _, ex := range r.exercises {
		if filter.Category == "" || ex.Category == filter.Category {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type fakeExportStore struct {
	key  string
	data []byte
}

func (s *fakeExportStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.key = key
	s.data = append([]byte(nil), data...)
	return "http://storage.local/exports-bucket/" + key, nil
}
