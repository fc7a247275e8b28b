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

// MongoWorkoutLogRepository implements domain.WorkoutLogRepository
type MongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutLogRepository(db *mongo.Database) *MongoWorkoutLogRepository {
	coll := db.Collection("workout_logs")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "exercise_id", Value: 1}, {Key: "start_time", Value: -1}}},
	})

	return &MongoWorkoutLogRepository{
		collection: coll,
	}
}

func (r *MongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) error {
	log.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to create workout log: %w", err)
	}
	log.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoWorkoutLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var log domain.WorkoutLog
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *MongoWorkoutLogRepository) List(ctx context.Context, filter domain.WorkoutLogFilter) ([]*domain.WorkoutLog, int64, error) {
	query := bson.M{"user_id": filter.UserID}
	if filter.ExerciseID != "" {
		query["exercise_id"] = filter.ExerciseID
	}
	if rng := dateRange(filter.From, filter.To); rng != nil {
		query["start_time"] = rng
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workout logs: %w", err)
	}

	opts := paginate(options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}}), filter.Page, filter.Limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	logs := []*domain.WorkoutLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *MongoWorkoutLogRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkoutLog, error) {
	query := bson.M{
		"user_id":    userID,
		"start_time": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []*domain.WorkoutLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *MongoWorkoutLogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoWorkoutLogRepository) UpdateVolume(ctx context.Context, id string, volume float64) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"total_volume": volume}})
	return err
}

func (r *MongoWorkoutLogRepository) ForEach(ctx context.Context, fn func(*domain.WorkoutLog) error) error {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var log domain.WorkoutLog
		if err := cursor.Decode(&log); err != nil {
			return fmt.Errorf("failed to decode workout log: %w", err)
		}
		if err := fn(&log); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func dateRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	rng := bson.M{}
	if from != nil {
		rng["$gte"] = *from
	}
	if to != nil {
		rng["$lte"] = *to
	}
	return rng
}
