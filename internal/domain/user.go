package domain

import (
	"context"
	"time"
)

// MaxRecentExercises caps the per-user recently used exercise list
const MaxRecentExercises = 20

// User is an account holder. PasswordHash is empty for federated-only accounts.
type User struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email" json:"email"`
	PasswordHash      string    `bson:"password_hash,omitempty" json:"-"`
	FirebaseUID       string    `bson:"firebase_uid,omitempty" json:"firebase_uid,omitempty"`
	FavoriteExercises []string  `bson:"favorite_exercises" json:"favoriteExercises"`
	RecentExercises   []string  `bson:"recent_exercises" json:"recentExercises"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRepository defines operations for managing users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*User, error)
	UpdateFirebaseUID(ctx context.Context, userID string, firebaseUID string) error

	// Favorites behave as a set
	AddFavorite(ctx context.Context, userID, exerciseID string) error
	RemoveFavorite(ctx context.Context, userID, exerciseID string) error

	// PushRecent moves exerciseID to the front of the recent list and trims it to max entries
	PushRecent(ctx context.Context, userID, exerciseID string, max int) error
}
