package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements domain.UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	coll := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// firebase_uid is sparse (allows empty values, only indexes non-empty)
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &MongoUserRepository{
		collection: coll,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.FavoriteExercises == nil {
		user.FavoriteExercises = []string{}
	}
	if user.RecentExercises == nil {
		user.RecentExercises = []string{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": uid})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateFirebaseUID(ctx context.Context, userID string, firebaseUID string) error {
	return r.update(ctx, userID, bson.M{"$set": bson.M{"firebase_uid": firebaseUID, "updated_at": time.Now()}})
}

func (r *MongoUserRepository) AddFavorite(ctx context.Context, userID, exerciseID string) error {
	return r.update(ctx, userID, bson.M{
		"$addToSet": bson.M{"favorite_exercises": exerciseID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
}

func (r *MongoUserRepository) RemoveFavorite(ctx context.Context, userID, exerciseID string) error {
	return r.update(ctx, userID, bson.M{
		"$pull": bson.M{"favorite_exercises": exerciseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

// PushRecent runs as two updates: pull any existing occurrence, then push to
// the front with $slice so the list stays deduplicated and bounded.
func (r *MongoUserRepository) PushRecent(ctx context.Context, userID, exerciseID string, max int) error {
	if err := r.update(ctx, userID, bson.M{"$pull": bson.M{"recent_exercises": exerciseID}}); err != nil {
		return err
	}
	return r.update(ctx, userID, bson.M{
		"$push": bson.M{"recent_exercises": bson.M{
			"$each":     bson.A{exerciseID},
			"$position": 0,
			"$slice":    max,
		}},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

func (r *MongoUserRepository) update(ctx context.Context, userID string, update bson.M) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
