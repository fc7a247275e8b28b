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

type MongoTemplateRepository struct {
	collection *mongo.Collection
}

func NewMongoTemplateRepository(db *mongo.Database) *MongoTemplateRepository {
	coll := db.Collection("workout_templates")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return &MongoTemplateRepository{
		collection: coll,
	}
}

func (r *MongoTemplateRepository) Create(ctx context.Context, tmpl *domain.WorkoutTemplate) error {
	tmpl.CreatedAt = time.Now()
	tmpl.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, tmpl)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	tmpl.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoTemplateRepository) GetByID(ctx context.Context, userID, id string) (*domain.WorkoutTemplate, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var tmpl domain.WorkoutTemplate
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&tmpl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *MongoTemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WorkoutTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []*domain.WorkoutTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *MongoTemplateRepository) Update(ctx context.Context, tmpl *domain.WorkoutTemplate) error {
	oid, err := objectID(tmpl.ID)
	if err != nil {
		return err
	}
	tmpl.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"plan_name":        tmpl.PlanName,
			"description":      tmpl.Description,
			"time":             tmpl.Time,
			"difficulty_level": tmpl.DifficultyLevel,
			"focus":            tmpl.Focus,
			"tags":             tmpl.Tags,
			"days":             tmpl.Days,
			"updated_at":       tmpl.UpdatedAt,
		},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid, "user_id": tmpl.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *MongoTemplateRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
