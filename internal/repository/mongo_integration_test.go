package repository

import (
	"context"
	"testing"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupTestDB spins up a fresh MongoDB container for the test
func setupTestDB(t *testing.T) *mongo.Database {
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("test_db")
}

func TestMongoRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("workout logs paginate newest first", func(t *testing.T) {
		repo := NewMongoWorkoutLogRepository(db)
		base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			require.NoError(t, repo.Create(ctx, &domain.WorkoutLog{
				UserID:     "u1",
				ExerciseID: "ex1",
				StartTime:  base.AddDate(0, 0, i),
				Sets:       []domain.SetEntry{{SetNumber: 1, Weight: "50", Reps: "10", Completed: true}},
			}))
		}
		require.NoError(t, repo.Create(ctx, &domain.WorkoutLog{UserID: "u2", StartTime: base}))

		page, total, err := repo.List(ctx, domain.WorkoutLogFilter{UserID: "u1", Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, page, 2)
		assert.True(t, page[0].StartTime.Equal(base.AddDate(0, 0, 2)))
		assert.Equal(t, domain.Numeric("50"), page[0].Sets[0].Weight)

		from := base.AddDate(0, 0, 3)
		recent, err := repo.ListByDateRange(ctx, "u1", from, base.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("one active weight goal", func(t *testing.T) {
		repo := NewMongoWeightGoalRepository(db)
		require.NoError(t, repo.ReplaceActive(ctx, &domain.WeightGoal{UserID: "u1", TargetWeight: 70, Unit: "kg", TargetDate: time.Now().AddDate(0, 1, 0)}))
		require.NoError(t, repo.ReplaceActive(ctx, &domain.WeightGoal{UserID: "u1", TargetWeight: 68, Unit: "kg", TargetDate: time.Now().AddDate(0, 2, 0)}))

		active, err := repo.GetActive(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 68.0, active.TargetWeight)

		done, err := repo.CompleteActive(ctx, "u1", time.Now())
		require.NoError(t, err)
		assert.True(t, done.Completed)

		_, err = repo.GetActive(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrNoActiveGoal)
	})

	t.Run("recent exercises are deduplicated and capped", func(t *testing.T) {
		repo := NewMongoUserRepository(db)
		user := &domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
		require.NoError(t, repo.Create(ctx, user))

		for _, id := range []string{"a", "b", "c", "a"} {
			require.NoError(t, repo.PushRecent(ctx, user.ID, id, 3))
		}
		require.NoError(t, repo.PushRecent(ctx, user.ID, "d", 3))
		require.NoError(t, repo.AddFavorite(ctx, user.ID, "a"))
		require.NoError(t, repo.AddFavorite(ctx, user.ID, "a"))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "a", "c"}, got.RecentExercises)
		assert.Equal(t, []string{"a"}, got.FavoriteExercises)

		err = repo.Create(ctx, &domain.User{Name: "Dup", Email: "ada@example.com"})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("exercise filters", func(t *testing.T) {
		repo := NewMongoExerciseRepository(db)
		require.NoError(t, repo.Create(ctx, &domain.Exercise{
			Name: "Barbell Squat", Category: "Strength", Difficulty: "Intermediate",
			Equipment:     []string{"Barbell"},
			TargetMuscles: domain.TargetMuscles{Primary: []string{"Quadriceps"}, Secondary: []string{"Glutes"}},
		}))
		require.NoError(t, repo.Create(ctx, &domain.Exercise{
			Name: "Push-up", Category: "Strength", Difficulty: "Beginner",
			Equipment:     []string{"Bodyweight"},
			TargetMuscles: domain.TargetMuscles{Primary: []string{"Chest"}},
		}))
		assert.ErrorIs(t, repo.Create(ctx, &domain.Exercise{Name: "Push-up"}), domain.ErrDuplicateExercise)

		found, total, err := repo.List(ctx, domain.ExerciseFilter{TargetMuscle: "glutes", Limit: 10, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Barbell Squat", found[0].Name)

		found, _, err = repo.List(ctx, domain.ExerciseFilter{Search: "push", Equipment: "bodyweight"})
		require.NoError(t, err)
		require.Len(t, found, 1)

		byIDs, err := repo.GetByIDs(ctx, []string{found[0].ID, "not-an-id"})
		require.NoError(t, err)
		assert.Len(t, byIDs, 1)
	})

	t.Run("refresh token rotation is single use", func(t *testing.T) {
		repo := NewMongoRefreshTokenRepository(db)
		now := time.Now().UTC().Truncate(time.Millisecond)
		for _, tok := range []*domain.RefreshToken{
			{UserID: "u1", Family: "fam-a", TokenHash: "h1", ExpiresAt: now.Add(time.Hour)},
			{UserID: "u1", Family: "fam-b", TokenHash: "h2", ExpiresAt: now.Add(time.Hour)},
		} {
			require.NoError(t, repo.Save(ctx, tok))
			assert.NotEmpty(t, tok.ID)
		}

		ok, err := repo.MarkRotated(ctx, "h1", "h1-next", now)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.MarkRotated(ctx, "h1", "h1-other", now)
		require.NoError(t, err)
		assert.False(t, ok, "second rotation must lose")

		stored, err := repo.ByHash(ctx, "h1")
		require.NoError(t, err)
		assert.True(t, stored.Rotated())
		assert.False(t, stored.Active(now))

		require.NoError(t, repo.RevokeFamily(ctx, "fam-b", now))
		stored, err = repo.ByHash(ctx, "h2")
		require.NoError(t, err)
		assert.False(t, stored.Active(now))
		assert.False(t, stored.Rotated())

		_, err = repo.ByHash(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
