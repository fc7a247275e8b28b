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

// MongoWeightGoalRepository implements domain.WeightGoalRepository.
// A partial unique index keeps a single active goal per user.
type MongoWeightGoalRepository struct {
	collection *mongo.Collection
}

func NewMongoWeightGoalRepository(db *mongo.Database) *MongoWeightGoalRepository {
	coll := db.Collection("weight_goals")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"completed": false}),
	})

	return &MongoWeightGoalRepository{
		collection: coll,
	}
}

func activeGoal(userID string) bson.M {
	return bson.M{"user_id": userID, "completed": false}
}

func (r *MongoWeightGoalRepository) GetActive(ctx context.Context, userID string) (*domain.WeightGoal, error) {
	var goal domain.WeightGoal
	if err := r.collection.FindOne(ctx, activeGoal(userID)).Decode(&goal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoActiveGoal
		}
		return nil, err
	}
	return &goal, nil
}

func (r *MongoWeightGoalRepository) ReplaceActive(ctx context.Context, goal *domain.WeightGoal) error {
	if _, err := r.collection.DeleteMany(ctx, activeGoal(goal.UserID)); err != nil {
		return fmt.Errorf("failed to clear active goal: %w", err)
	}

	goal.Completed = false
	goal.CompletedAt = nil
	goal.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("failed to create weight goal: %w", err)
	}
	goal.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoWeightGoalRepository) DeleteActive(ctx context.Context, userID string) error {
	res, err := r.collection.DeleteMany(ctx, activeGoal(userID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoActiveGoal
	}
	return nil
}

func (r *MongoWeightGoalRepository) CompleteActive(ctx context.Context, userID string, at time.Time) (*domain.WeightGoal, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"completed": true, "completed_at": at}}

	var goal domain.WeightGoal
	if err := r.collection.FindOneAndUpdate(ctx, activeGoal(userID), update, opts).Decode(&goal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoActiveGoal
		}
		return nil, err
	}
	return &goal, nil
}
