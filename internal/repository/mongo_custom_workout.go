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

type MongoCustomWorkoutRepository struct {
	collection *mongo.Collection
}

func NewMongoCustomWorkoutRepository(db *mongo.Database) *MongoCustomWorkoutRepository {
	coll := db.Collection("custom_workouts")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
	})

	return &MongoCustomWorkoutRepository{
		collection: coll,
	}
}

func (r *MongoCustomWorkoutRepository) Create(ctx context.Context, w *domain.CustomWorkout) error {
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt

	result, err := r.collection.InsertOne(ctx, w)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	w.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoCustomWorkoutRepository) GetByID(ctx context.Context, userID, id string) (*domain.CustomWorkout, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var w domain.CustomWorkout
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *MongoCustomWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CustomWorkout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []*domain.CustomWorkout{}
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *MongoCustomWorkoutRepository) Update(ctx context.Context, w *domain.CustomWorkout) error {
	oid, err := objectID(w.ID)
	if err != nil {
		return err
	}
	w.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        w.Name,
			"description": w.Description,
			"exercises":   w.Exercises,
			"updated_at":  w.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid, "user_id": w.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *MongoCustomWorkoutRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *MongoCustomWorkoutRepository) MarkCompleted(ctx context.Context, userID, id string, at time.Time) (*domain.CustomWorkout, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$inc": bson.M{"times_completed": 1},
		"$set": bson.M{"last_completed_at": at, "updated_at": at},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var w domain.CustomWorkout
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user_id": userID}, update, opts).Decode(&w)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &w, nil
}
