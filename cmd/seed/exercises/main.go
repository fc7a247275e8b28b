package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedExercise struct {
	Name       string
	Category   string
	Movement   string
	Primary    []string
	Secondary  []string
	Equipment  []string
	Difficulty string
	VideoURL   string
}

var catalog = []seedExercise{
	// Legs
	{"Barbell Squat", "Strength", "Compound", []string{"quadriceps", "glutes"}, []string{"hamstrings", "core"}, []string{"barbell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=SW_C1A-rejs"},
	{"Leg Press", "Strength", "Compound", []string{"quadriceps"}, []string{"glutes"}, []string{"machine"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=IZxyjW7MPJQ"},
	{"Walking Lunge", "Strength", "Compound", []string{"quadriceps", "glutes"}, []string{"hamstrings"}, []string{"bodyweight", "dumbbell"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=D7KaRcUTQeE"},
	{"Romanian Deadlift", "Strength", "Compound", []string{"hamstrings"}, []string{"glutes", "lower back"}, []string{"barbell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=JCXUYuzwZ_M"},
	{"Goblet Squat", "Strength", "Compound", []string{"quadriceps"}, []string{"glutes", "core"}, []string{"dumbbell"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=MeIiGibT6X0"},
	{"Bulgarian Split Squat", "Strength", "Compound", []string{"quadriceps", "glutes"}, nil, []string{"dumbbell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=9FOMyxA3Lw4"},
	{"Glute Bridge", "Strength", "Isolation", []string{"glutes"}, []string{"hamstrings"}, []string{"bodyweight"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=vOvRFsGMMqo"},
	{"Calf Raise", "Strength", "Isolation", []string{"calves"}, nil, []string{"machine"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=3UWi44yN-wM"},

	// Chest
	{"Barbell Bench Press", "Strength", "Compound", []string{"chest"}, []string{"triceps", "shoulders"}, []string{"barbell", "bench"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=EUjh50tLlBo"},
	{"Incline Dumbbell Press", "Strength", "Compound", []string{"chest"}, []string{"shoulders"}, []string{"dumbbell", "bench"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=8iPEnn-ltC8"},
	{"Push Up", "Strength", "Compound", []string{"chest"}, []string{"triceps", "core"}, []string{"bodyweight"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=IODxDxX7oi4"},
	{"Cable Fly", "Strength", "Isolation", []string{"chest"}, nil, []string{"cable"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=I-Ue34qLxc4"},
	{"Dips", "Strength", "Compound", []string{"chest", "triceps"}, []string{"shoulders"}, []string{"bodyweight"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=SwDers3SMZ4"},

	// Back
	{"Pull Up", "Strength", "Compound", []string{"lats"}, []string{"biceps"}, []string{"bodyweight", "pull-up bar"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=eGo4IYlbE5g"},
	{"Lat Pulldown", "Strength", "Compound", []string{"lats"}, []string{"biceps"}, []string{"cable"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=CAwf7n6Luuc"},
	{"Barbell Row", "Strength", "Compound", []string{"upper back", "lats"}, []string{"biceps"}, []string{"barbell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=DgyslsszCQ0"},
	{"Seated Cable Row", "Strength", "Compound", []string{"upper back"}, []string{"biceps"}, []string{"cable"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=GZbfZ033f74"},
	{"Deadlift", "Strength", "Compound", []string{"hamstrings", "lower back"}, []string{"glutes", "traps"}, []string{"barbell"}, domain.DifficultyAdvanced, "https://www.youtube.com/watch?v=U1H1VG9Uh50"},
	{"Face Pull", "Strength", "Isolation", []string{"rear delts"}, []string{"traps"}, []string{"cable"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=ntBwG1E3Pzs"},

	// Shoulders and arms
	{"Overhead Press", "Strength", "Compound", []string{"shoulders"}, []string{"triceps", "core"}, []string{"barbell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=HzIiInu578Q"},
	{"Lateral Raise", "Strength", "Isolation", []string{"shoulders"}, nil, []string{"dumbbell"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=3VcKaXpzqRo"},
	{"Barbell Curl", "Strength", "Isolation", []string{"biceps"}, []string{"forearms"}, []string{"barbell"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=aEscWJ3dS3w"},
	{"Hammer Curl", "Strength", "Isolation", []string{"biceps"}, []string{"forearms"}, []string{"dumbbell"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=obovFxPjXSM"},
	{"Tricep Pushdown", "Strength", "Isolation", []string{"triceps"}, nil, []string{"cable"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=2-LAMcpzHLU"},

	// Core and conditioning
	{"Plank", "Core", "Isometric", []string{"core"}, []string{"shoulders"}, []string{"bodyweight"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=pSHjTRCQxIw"},
	{"Russian Twist", "Core", "Rotation", []string{"obliques"}, []string{"core"}, []string{"bodyweight"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=wkD8rjk6OGI"},
	{"Ab Wheel Rollout", "Core", "Anti-extension", []string{"core"}, []string{"lats"}, []string{"ab wheel"}, domain.DifficultyAdvanced, "https://www.youtube.com/watch?v=_BHKT60P6bc"},
	{"Mountain Climber", "Cardio", "Compound", []string{"core"}, []string{"shoulders", "quadriceps"}, []string{"bodyweight"}, domain.DifficultyBeginner, "https://www.youtube.com/watch?v=nmwgirgXLYM"},
	{"Kettlebell Swing", "Cardio", "Compound", []string{"glutes", "hamstrings"}, []string{"core"}, []string{"kettlebell"}, domain.DifficultyIntermediate, "https://www.youtube.com/watch?v=YSxHifyI6s8"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewMongoExerciseRepository(client.Database(cfg.MongoDB.Database))

	created := 0
	for _, seed := range catalog {
		ex := &domain.Exercise{
			Name:          seed.Name,
			Category:      seed.Category,
			MovementType:  seed.Movement,
			TargetMuscles: domain.TargetMuscles{Primary: seed.Primary, Secondary: seed.Secondary},
			Equipment:     seed.Equipment,
			Difficulty:    seed.Difficulty,
			Media:         domain.ExerciseMedia{VideoURL: seed.VideoURL},
		}
		if err := repo.Create(ctx, ex); err != nil {
			if errors.Is(err, domain.ErrDuplicateExercise) {
				fmt.Printf("Skipping duplicate: %s\n", ex.Name)
				continue
			}
			log.Printf("Error creating %s: %v\n", ex.Name, err)
			continue
		}
		created++
		fmt.Printf("Created: %s\n", ex.Name)
	}
	fmt.Printf("Seeding exercises complete: %d created, %d in catalog\n", created, len(catalog))
}
