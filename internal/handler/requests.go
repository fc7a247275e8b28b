package handler

import (
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
)

const minPasswordLength = 6

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "name is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < minPasswordLength {
		return invalid("password", "password must be at least 6 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return invalid("email", "email and password are required")
	}
	return nil
}

type FederatedLoginRequest struct {
	IDToken string `json:"idToken"`
}

func (r *FederatedLoginRequest) Validate() error {
	if r.IDToken == "" {
		return invalid("idToken", "idToken is required")
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return invalid("refreshToken", "refreshToken is required")
	}
	return nil
}

// LogoutRequest revokes one refresh token, or every session of the user when All is set
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
	All          bool   `json:"all"`
}

func (r *LogoutRequest) Validate() error {
	if !r.All && r.RefreshToken == "" {
		return invalid("refreshToken", "refreshToken is required")
	}
	return nil
}

type SetRequest struct {
	SetNumber int            `json:"setNumber"`
	Weight    domain.Numeric `json:"weight"`
	Reps      domain.Numeric `json:"reps"`
	Completed *bool          `json:"completed,omitempty"`
	Notes     string         `json:"notes,omitempty"`
}

// WorkoutLogRequest is the full log body. Exercise carries the exercise id.
type WorkoutLogRequest struct {
	Exercise      string       `json:"exercise"`
	ExerciseName  string       `json:"exerciseName,omitempty"`
	StartTime     *time.Time   `json:"startTime"`
	EndTime       *time.Time   `json:"endTime,omitempty"`
	TotalDuration int          `json:"totalDuration"`
	RestTime      int          `json:"restTime"`
	ActiveTime    int          `json:"activeTime"`
	Sets          []SetRequest `json:"sets"`
	Notes         string       `json:"notes"`
}

func (r *WorkoutLogRequest) Validate() error {
	if strings.TrimSpace(r.Exercise) == "" {
		return invalid("exercise", "exercise is required")
	}
	if r.StartTime == nil || r.StartTime.IsZero() {
		return invalid("startTime", "startTime is required")
	}
	if r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		return invalid("endTime", "endTime must not be before startTime")
	}
	if r.TotalDuration < 0 || r.RestTime < 0 || r.ActiveTime < 0 {
		return invalid("totalDuration", "durations must not be negative")
	}
	if len(r.Sets) == 0 {
		return invalid("sets", "at least one set is required")
	}
	return nil
}

// ToDomain builds the log for userID. Sets default to completed.
func (r *WorkoutLogRequest) ToDomain(userID string) *domain.WorkoutLog {
	log := &domain.WorkoutLog{
		UserID:        userID,
		ExerciseID:    strings.TrimSpace(r.Exercise),
		ExerciseName:  strings.TrimSpace(r.ExerciseName),
		StartTime:     *r.StartTime,
		TotalDuration: r.TotalDuration,
		RestTime:      r.RestTime,
		ActiveTime:    r.ActiveTime,
		Notes:         r.Notes,
		Sets:          make([]domain.SetEntry, 0, len(r.Sets)),
	}
	if r.EndTime != nil {
		log.EndTime = *r.EndTime
	}
	for _, s := range r.Sets {
		completed := true
		if s.Completed != nil {
			completed = *s.Completed
		}
		log.Sets = append(log.Sets, domain.SetEntry{
			SetNumber: s.SetNumber,
			Weight:    s.Weight,
			Reps:      s.Reps,
			Completed: completed,
			Notes:     s.Notes,
		})
	}
	return log
}

type QuickSetRequest struct {
	Weight domain.Numeric `json:"weight"`
	Reps   domain.Numeric `json:"reps"`
	Notes  string         `json:"notes,omitempty"`
}

type QuickLogRequest struct {
	ExerciseID   string            `json:"exerciseId"`
	ExerciseName string            `json:"exerciseName"`
	Duration     int               `json:"duration"`
	Date         *time.Time        `json:"date,omitempty"`
	Sets         []QuickSetRequest `json:"sets"`
	Notes        string            `json:"notes,omitempty"`
}

func (r *QuickLogRequest) Validate() error {
	if strings.TrimSpace(r.ExerciseID) == "" {
		return invalid("exerciseId", "exerciseId is required")
	}
	if strings.TrimSpace(r.ExerciseName) == "" {
		return invalid("exerciseName", "exerciseName is required")
	}
	if r.Duration < 0 {
		return invalid("duration", "duration must not be negative")
	}
	if len(r.Sets) == 0 {
		return invalid("sets", "at least one set is required")
	}
	return nil
}

func (r *QuickLogRequest) ToQuickLog() service.QuickLog {
	q := service.QuickLog{
		ExerciseID:   strings.TrimSpace(r.ExerciseID),
		ExerciseName: r.ExerciseName,
		Duration:     r.Duration,
		Date:         r.Date,
		Notes:        r.Notes,
		Sets:         make([]service.QuickSet, 0, len(r.Sets)),
	}
	for _, s := range r.Sets {
		q.Sets = append(q.Sets, service.QuickSet{Weight: s.Weight, Reps: s.Reps, Notes: s.Notes})
	}
	return q
}

type WeightEntryRequest struct {
	Date   *time.Time `json:"date,omitempty"`
	Weight float64    `json:"weight"`
	Unit   string     `json:"unit,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

func (r *WeightEntryRequest) Validate() error {
	if err := validateWeight("weight", r.Weight); err != nil {
		return err
	}
	return validateUnit(r.Unit)
}

// WeightUpdateRequest is a partial update; absent fields keep their stored value
type WeightUpdateRequest struct {
	Date   *time.Time `json:"date,omitempty"`
	Weight *float64   `json:"weight,omitempty"`
	Unit   *string    `json:"unit,omitempty"`
	Notes  *string    `json:"notes,omitempty"`
}

func (r *WeightUpdateRequest) Validate() error {
	if r.Weight != nil {
		if err := validateWeight("weight", *r.Weight); err != nil {
			return err
		}
	}
	if r.Unit != nil {
		return validateUnit(*r.Unit)
	}
	return nil
}

func (r *WeightUpdateRequest) ToUpdate() service.WeightUpdate {
	return service.WeightUpdate{Date: r.Date, Weight: r.Weight, Unit: r.Unit, Notes: r.Notes}
}

type WeightGoalRequest struct {
	TargetWeight float64    `json:"targetWeight"`
	TargetDate   *time.Time `json:"targetDate"`
	Unit         string     `json:"unit,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

func (r *WeightGoalRequest) Validate() error {
	if err := validateWeight("targetWeight", r.TargetWeight); err != nil {
		return err
	}
	if r.TargetDate == nil || r.TargetDate.IsZero() {
		return invalid("targetDate", "targetDate is required")
	}
	return validateUnit(r.Unit)
}

type ExerciseRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Instructions  []string             `json:"instructions"`
	TargetMuscles domain.TargetMuscles `json:"target_muscles"`
	Category      string               `json:"category"`
	MovementType  string               `json:"movement_type"`
	Equipment     []string             `json:"equipment"`
	Difficulty    string               `json:"difficulty"`
	Media         domain.ExerciseMedia `json:"media"`
}

func (r *ExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "name is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return invalid("category", "category is required")
	}
	return validateDifficulty("difficulty", r.Difficulty)
}

func (r *ExerciseRequest) ToDomain() *domain.Exercise {
	return &domain.Exercise{
		Name:          r.Name,
		Description:   r.Description,
		Instructions:  r.Instructions,
		TargetMuscles: r.TargetMuscles,
		Category:      r.Category,
		MovementType:  r.MovementType,
		Equipment:     r.Equipment,
		Difficulty:    r.Difficulty,
		Media:         r.Media,
	}
}

type RecentExerciseRequest struct {
	ExerciseID string `json:"exerciseId"`
}

func (r *RecentExerciseRequest) Validate() error {
	if strings.TrimSpace(r.ExerciseID) == "" {
		return invalid("exerciseId", "exerciseId is required")
	}
	return nil
}

type CustomWorkoutRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
}

func (r *CustomWorkoutRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "name is required")
	}
	for _, ex := range r.Exercises {
		if strings.TrimSpace(ex.ExerciseName) == "" && strings.TrimSpace(ex.ExerciseID) == "" {
			return invalid("exercises", "every exercise needs an exerciseId or exerciseName")
		}
		if ex.Sets < 0 || ex.Reps < 0 || ex.Weight < 0 || ex.RestSeconds < 0 {
			return invalid("exercises", "exercise targets must not be negative")
		}
	}
	return nil
}

func (r *CustomWorkoutRequest) ToDomain() *domain.CustomWorkout {
	return &domain.CustomWorkout{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Exercises:   r.Exercises,
	}
}

type TemplateRequest struct {
	PlanName        string               `json:"plan_name"`
	Description     string               `json:"description"`
	Time            string               `json:"time"`
	DifficultyLevel string               `json:"difficulty_level"`
	Focus           domain.TemplateFocus `json:"focus"`
	Tags            []string             `json:"tags"`
	Days            []domain.TemplateDay `json:"days"`
}

func (r *TemplateRequest) Validate() error {
	if strings.TrimSpace(r.PlanName) == "" {
		return invalid("plan_name", "plan_name is required")
	}
	if len(r.Days) == 0 {
		return invalid("days", "at least one day is required")
	}
	for _, day := range r.Days {
		for _, ex := range day.Exercises {
			if strings.TrimSpace(ex.ExerciseName) == "" {
				return invalid("days", "every exercise needs an exercise_name")
			}
		}
	}
	return validateDifficulty("difficulty_level", r.DifficultyLevel)
}

func (r *TemplateRequest) ToDomain() *domain.WorkoutTemplate {
	return &domain.WorkoutTemplate{
		PlanName:        r.PlanName,
		Description:     r.Description,
		Time:            r.Time,
		DifficultyLevel: r.DifficultyLevel,
		Focus:           r.Focus,
		Tags:            r.Tags,
		Days:            r.Days,
	}
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return invalid("email", "a valid email is required")
	}
	return nil
}

func validateWeight(field string, w float64) error {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return invalid(field, field+" must be a positive number")
	}
	return nil
}

func validateUnit(unit string) error {
	switch unit {
	case "", domain.UnitKg, domain.UnitLbs:
		return nil
	}
	return invalid("unit", "unit must be kg or lbs")
}

func validateDifficulty(field, level string) error {
	switch level {
	case "", domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
		return nil
	}
	return invalid(field, field+" must be Beginner, Intermediate or Advanced")
}
