package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// volumeTolerance ignores float noise when comparing stored and computed volume
const volumeTolerance = 1e-6

func main() {
	userID := flag.String("user", "", "Only recalculate logs of this user ID")
	dryRun := flag.Bool("dry-run", false, "Show what would be done without making changes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewMongoWorkoutLogRepository(client.Database(cfg.MongoDB.Database))

	var scanned, updated int
	var grandTotal float64

	err = repo.ForEach(ctx, func(entry *domain.WorkoutLog) error {
		if *userID != "" && entry.UserID != *userID {
			return nil
		}
		scanned++

		volume := stats.Volume(entry.Sets)
		grandTotal += volume
		if math.Abs(volume-entry.TotalVolume) < volumeTolerance {
			return nil
		}

		fmt.Printf("%s %s (%s): %.1f -> %.1f\n",
			entry.ID, entry.ExerciseName, entry.StartTime.Format(stats.DateLayout), entry.TotalVolume, volume)
		updated++
		if *dryRun {
			return nil
		}
		if err := repo.UpdateVolume(ctx, entry.ID, volume); err != nil {
			return fmt.Errorf("update %s: %w", entry.ID, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Recalculation stopped: %v", err)
	}

	fmt.Println("Summary:")
	fmt.Printf("   Logs scanned: %d\n", scanned)
	fmt.Printf("   Logs with stale volume: %d\n", updated)
	fmt.Printf("   Grand total volume: %.0f\n", grandTotal)

	if *dryRun {
		fmt.Println("\nThis was a dry run. No changes were made.")
		fmt.Println("Run without -dry-run to apply changes.")
	}
}
