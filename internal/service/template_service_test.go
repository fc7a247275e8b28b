package service

import (
	"context"
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplateRepo struct {
	templates map[string]*domain.WorkoutTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, tmpl *domain.WorkoutTemplate) error {
	tmpl.ID = "tmpl-1"
	tmpl.CreatedAt = fixedNow
	r.templates[tmpl.ID] = tmpl
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, userID, id string) (*domain.WorkoutTemplate, error) {
	tmpl, ok := r.templates[id]
	if !ok || tmpl.UserID != userID {
		return nil, domain.ErrTemplateNotFound
	}
	cp := *tmpl
	return &cp, nil
}

func (r *fakeTemplateRepo) ListByUser(_ context.Context, userID string) ([]*domain.WorkoutTemplate, error) {
	out := []*domain.WorkoutTemplate{}
	for _, tmpl := range r.templates {
		if tmpl.UserID == userID {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, tmpl *domain.WorkoutTemplate) error {
	r.templates[tmpl.ID] = tmpl
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, userID, id string) error {
	if _, err := r.GetByID(context.Background(), userID, id); err != nil {
		return err
	}
	delete(r.templates, id)
	return nil
}

func TestTemplatesAreUserScoped(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(&fakeTemplateRepo{templates: map[string]*domain.WorkoutTemplate{}})

	tmpl := &domain.WorkoutTemplate{
		PlanName: " Push Pull Legs ",
		Tags:     []string{"split", " ", "hypertrophy"},
		Days: []domain.TemplateDay{
			{DayNumber: 4, Exercises: []domain.TemplateExercise{{ExerciseName: "Bench Press", Sets: "3x8"}}},
			{DayNumber: 9},
		},
	}
	require.NoError(t, svc.Create(ctx, "user-1", tmpl))
	assert.Equal(t, "Push Pull Legs", tmpl.PlanName)
	assert.Equal(t, []string{"split", "hypertrophy"}, tmpl.Tags)
	assert.Equal(t, 1, tmpl.Days[0].DayNumber)
	assert.Equal(t, 2, tmpl.Days[1].DayNumber)

	_, err := svc.Get(ctx, "user-2", tmpl.ID)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	updated, err := svc.Update(ctx, "user-1", tmpl.ID, &domain.WorkoutTemplate{PlanName: "Upper Lower"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, updated.CreatedAt)
	assert.Equal(t, "user-1", updated.UserID)

	_, err = svc.Update(ctx, "user-2", tmpl.ID, &domain.WorkoutTemplate{PlanName: "Hijack"})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "user-2", tmpl.ID), domain.ErrTemplateNotFound)
	require.NoError(t, svc.Delete(ctx, "user-1", tmpl.ID))
}

type fakeCustomWorkoutRepo struct {
	workout *domain.CustomWorkout
}

func (r *fakeCustomWorkoutRepo) Create(_ context.Context, w *domain.CustomWorkout) error {
	w.ID = "cw-1"
	r.workout = w
	return nil
}

func (r *fakeCustomWorkoutRepo) GetByID(_ context.Context, userID, id string) (*domain.CustomWorkout, error) {
	if r.workout == nil || r.workout.ID != id || r.workout.UserID != userID {
		return nil, domain.ErrWorkoutNotFound
	}
	cp := *r.workout
	return &cp, nil
}

func (r *fakeCustomWorkoutRepo) ListByUser(_ context.Context, _ string) ([]*domain.CustomWorkout, error) {
	return []*domain.CustomWorkout{r.workout}, nil
}

func (r *fakeCustomWorkoutRepo) Update(_ context.Context, w *domain.CustomWorkout) error {
	r.workout = w
	return nil
}

func (r *fakeCustomWorkoutRepo) Delete(_ context.Context, _, _ string) error {
	r.workout = nil
	return nil
}

func (r *fakeCustomWorkoutRepo) MarkCompleted(ctx context.Context, userID, id string, at time.Time) (*domain.CustomWorkout, error) {
	w, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	w.TimesCompleted++
	w.LastCompletedAt = &at
	r.workout = w
	return w, nil
}

func TestCustomWorkoutCompletion(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCustomWorkoutRepo{}
	svc := NewCustomWorkoutService(repo)
	svc.now = func() time.Time { return fixedNow }

	w := &domain.CustomWorkout{Name: "Leg Day", TimesCompleted: 7}
	require.NoError(t, svc.Create(ctx, "user-1", w))
	assert.Zero(t, w.TimesCompleted)
	assert.NotNil(t, w.Exercises)

	for i := 0; i < 2; i++ {
		_, err := svc.Complete(ctx, "user-1", w.ID)
		require.NoError(t, err)
	}

	updated, err := svc.Update(ctx, "user-1", w.ID, &domain.CustomWorkout{Name: "Legs"})
	require.NoError(t, err)
	assert.Equal(t, "Legs", updated.Name)
	assert.Equal(t, 2, updated.TimesCompleted)
	require.NotNil(t, updated.LastCompletedAt)
	assert.Equal(t, fixedNow, *updated.LastCompletedAt)

	_, err = svc.Complete(ctx, "user-2", w.ID)
	assert.ErrorIs(t, err, domain.ErrWorkoutNotFound)
}
