// Command workouts fills a user's history with random workout logs and
// weigh-ins so the dashboard, trend chart and export have something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	email := flag.String("email", "", "Email of the user receiving the data (required)")
	count := flag.Int("count", 5, "Number of workout logs to create")
	days := flag.Int("days", 30, "Spread the data over this many past days")
	weighIns := flag.Int("weigh-ins", 0, "Number of daily weigh-ins to create, ending today")
	startWeight := flag.Float64("start-weight", 80, "Weight of the oldest weigh-in in kg")
	exerciseID := flag.String("exercise", "", "Exercise ID to log; defaults to a random catalog exercise")
	seed := flag.Int64("seed", 0, "Random seed; 0 picks a random one")
	flag.Parse()

	if *email == "" || *count < 0 || *days < 1 {
		fmt.Println("Usage: seed-workouts -email <USER_EMAIL> [-count 5] [-days 30] [-weigh-ins 0] [-exercise <ID>]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLog := logger.New(cfg.Log.Level, cfg.Log.File)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB.Database)

	// Cached dashboards go stale when logs are added behind the API's back
	var cache service.StatsCache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLog.WithError(err).Warn("redis unavailable, stats cache will not be invalidated")
	} else {
		cache = repository.NewRedisCacheRepository(redisClient)
	}

	userRepo := repository.NewMongoUserRepository(db)
	exerciseRepo := repository.NewMongoExerciseRepository(db)
	logService := service.NewWorkoutLogService(repository.NewMongoWorkoutLogRepository(db), userRepo, cache, nil, appLog)
	weightService := service.NewWeightService(
		repository.NewMongoWeightRepository(db),
		repository.NewMongoWeightGoalRepository(db),
		nil, nil, appLog,
	)

	user, err := userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatalf("Failed to find user %s: %v", *email, err)
	}

	var exercises []*domain.Exercise
	if *exerciseID != "" {
		ex, err := exerciseRepo.GetByID(ctx, *exerciseID)
		if err != nil {
			log.Fatalf("Failed to load exercise %s: %v", *exerciseID, err)
		}
		exercises = []*domain.Exercise{ex}
	} else {
		exercises, _, err = exerciseRepo.List(ctx, domain.ExerciseFilter{Page: 1, Limit: 10})
		if err != nil {
			log.Fatalf("Failed to list exercises: %v", err)
		}
	}
	if *count > 0 && len(exercises) == 0 {
		log.Fatal("No exercises found, run the exercise seed first")
	}

	faker := gofakeit.New(*seed)
	now := time.Now()

	for i := 0; i < *count; i++ {
		ex := exercises[faker.Number(0, len(exercises)-1)]
		date := now.AddDate(0, 0, -faker.Number(0, *days-1)).Add(-time.Duration(faker.Number(0, 180)) * time.Minute)

		// 3-5 sets of 10-100 kg for 6-15 reps, 20-60 minutes in total
		sets := make([]service.QuickSet, faker.Number(3, 5))
		for j := range sets {
			sets[j] = service.QuickSet{
				Weight: domain.Numeric(strconv.Itoa(faker.Number(10, 100))),
				Reps:   domain.Numeric(strconv.Itoa(faker.Number(6, 15))),
			}
		}

		entry, err := logService.CreateQuick(ctx, user.ID, service.QuickLog{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Duration:     faker.Number(20, 60) * 60,
			Date:         &date,
			Sets:         sets,
			Notes:        fmt.Sprintf("Test workout #%d: %s", i+1, faker.Sentence(4)),
		})
		if err != nil {
			log.Fatalf("Failed to create workout log %d: %v", i+1, err)
		}
		fmt.Printf("Created workout log: %s on %s, volume %.0f\n", entry.ExerciseName, entry.StartTime.Format("2006-01-02"), entry.TotalVolume)
	}

	// A slow downward drift with daily noise
	weight := *startWeight
	for i := *weighIns - 1; i >= 0; i-- {
		weight += faker.Float64Range(-0.6, 0.45)
		entry := &domain.WeightEntry{
			UserID: user.ID,
			Date:   now.AddDate(0, 0, -i),
			Weight: math.Round(weight*10) / 10,
			Unit:   domain.UnitKg,
		}
		if err := weightService.Add(ctx, entry); err != nil {
			log.Fatalf("Failed to create weigh-in: %v", err)
		}
	}
	if *weighIns > 0 {
		fmt.Printf("Created %d weigh-ins ending at %.1f kg\n", *weighIns, math.Round(weight*10)/10)
	}

	fmt.Println("Seeding test data complete.")
}
