package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func starterTemplates() []*domain.WorkoutTemplate {
	return []*domain.WorkoutTemplate{
		{
			PlanName:        "Full Body Foundations",
			Description:     "Three full body sessions a week built around the main lifts.",
			Time:            "45-60 min",
			DifficultyLevel: domain.DifficultyBeginner,
			Focus:           domain.TemplateFocus{Strength: true, Mobility: true},
			Tags:            []string{"full body", "3 days"},
			Days: []domain.TemplateDay{
				{DayNumber: 1, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Goblet Squat", Sets: "3x10", Intensity: "RPE 7"},
					{ExerciseName: "Push Up", Sets: "3x8-12", Intensity: "RPE 7", Variations: []string{"Incline Push Up"}},
					{ExerciseName: "Seated Cable Row", Sets: "3x10", Intensity: "RPE 7"},
					{ExerciseName: "Plank", Sets: "3x30s", Intensity: "Bodyweight"},
				}},
				{DayNumber: 2, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Romanian Deadlift", Sets: "3x8", Intensity: "RPE 7"},
					{ExerciseName: "Overhead Press", Sets: "3x8", Intensity: "RPE 7"},
					{ExerciseName: "Lat Pulldown", Sets: "3x10", Intensity: "RPE 7"},
				}},
				{DayNumber: 3, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Walking Lunge", Sets: "3x12", Intensity: "RPE 7"},
					{ExerciseName: "Incline Dumbbell Press", Sets: "3x10", Intensity: "RPE 7"},
					{ExerciseName: "Face Pull", Sets: "3x15", Intensity: "Light"},
				}, DayNotes: "Finish with 10 minutes of easy cardio"},
			},
		},
		{
			PlanName:        "Upper Lower Split",
			Description:     "Four days alternating upper and lower body.",
			Time:            "60 min",
			DifficultyLevel: domain.DifficultyIntermediate,
			Focus:           domain.TemplateFocus{Strength: true, Hypertrophy: true},
			Tags:            []string{"upper/lower", "4 days"},
			Days: []domain.TemplateDay{
				{DayNumber: 1, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Barbell Bench Press", Sets: "4x6", Intensity: "RPE 8"},
					{ExerciseName: "Barbell Row", Sets: "4x8", Intensity: "RPE 8"},
					{ExerciseName: "Lateral Raise", Sets: "3x15", Intensity: "RPE 9"},
					{ExerciseName: "Barbell Curl", Sets: "3x10", Intensity: "RPE 8"},
				}},
				{DayNumber: 2, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Barbell Squat", Sets: "4x6", Intensity: "RPE 8"},
					{ExerciseName: "Romanian Deadlift", Sets: "3x8", Intensity: "RPE 8"},
					{ExerciseName: "Calf Raise", Sets: "4x12", Intensity: "RPE 9"},
				}},
				{DayNumber: 3, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Overhead Press", Sets: "4x6", Intensity: "RPE 8"},
					{ExerciseName: "Pull Up", Sets: "4xAMRAP", Intensity: "Bodyweight", Variations: []string{"Lat Pulldown"}},
					{ExerciseName: "Dips", Sets: "3x10", Intensity: "RPE 8"},
				}},
				{DayNumber: 4, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Deadlift", Sets: "3x5", Intensity: "RPE 8"},
					{ExerciseName: "Bulgarian Split Squat", Sets: "3x10", Intensity: "RPE 8"},
					{ExerciseName: "Glute Bridge", Sets: "3x12", Intensity: "RPE 8"},
				}},
			},
		},
		{
			PlanName:        "Conditioning Circuit",
			Description:     "Short circuits for work capacity.",
			Time:            "30 min",
			DifficultyLevel: domain.DifficultyAdvanced,
			Focus:           domain.TemplateFocus{Endurance: true},
			Tags:            []string{"circuit", "conditioning"},
			Days: []domain.TemplateDay{
				{DayNumber: 1, Exercises: []domain.TemplateExercise{
					{ExerciseName: "Kettlebell Swing", Sets: "5x20", Intensity: "Moderate"},
					{ExerciseName: "Mountain Climber", Sets: "5x40s", Intensity: "Hard"},
					{ExerciseName: "Ab Wheel Rollout", Sets: "5x8", Intensity: "RPE 8"},
				}, DayNotes: "Rest 60s between rounds"},
			},
		},
	}
}

func main() {
	email := flag.String("email", "", "Email of the user receiving the templates (required)")
	flag.Parse()

	if *email == "" {
		fmt.Println("Usage: seed-templates -email <USER_EMAIL>")
		os.Exit(1)
	}

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

	db := client.Database(cfg.MongoDB.Database)
	userRepo := repository.NewMongoUserRepository(db)
	templateRepo := repository.NewMongoTemplateRepository(db)

	user, err := userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatalf("Failed to find user %s: %v", *email, err)
	}

	existing, err := templateRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, tmpl := range existing {
		have[tmpl.PlanName] = true
	}

	for _, tmpl := range starterTemplates() {
		if have[tmpl.PlanName] {
			fmt.Printf("Skipping existing template: %s\n", tmpl.PlanName)
			continue
		}
		tmpl.UserID = user.ID
		if err := templateRepo.Create(ctx, tmpl); err != nil {
			log.Printf("Error creating template %s: %v\n", tmpl.PlanName, err)
			continue
		}
		fmt.Printf("Created template: %s with %d days\n", tmpl.PlanName, len(tmpl.Days))
	}
}
