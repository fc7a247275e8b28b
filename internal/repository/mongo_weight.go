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

// MongoWeightRepository implements domain.WeightRepository
type MongoWeightRepository struct {
	collection *mongo.Collection
}

func NewMongoWeightRepository(db *mongo.Database) *MongoWeightRepository {
	coll := db.Collection("weight_entries")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})

	return &MongoWeightRepository{
		collection: coll,
	}
}

func (r *MongoWeightRepository) Create(ctx context.Context, entry *domain.WeightEntry) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create weight entry: %w", err)
	}
	entry.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoWeightRepository) GetByID(ctx context.Context, id string) (*domain.WeightEntry, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var entry domain.WeightEntry
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *MongoWeightRepository) ListByUser(ctx context.Context, userID string, since *time.Time) ([]*domain.WeightEntry, error) {
	query := bson.M{"user_id": userID}
	if since != nil {
		query["date"] = bson.M{"$gte": *since}
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []*domain.WeightEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoWeightRepository) Update(ctx context.Context, entry *domain.WeightEntry) error {
	oid, err := objectID(entry.ID)
	if err != nil {
		return err
	}
	entry.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"date":       entry.Date,
			"weight":     entry.Weight,
			"unit":       entry.Unit,
			"notes":      entry.Notes,
			"updated_at": entry.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update weight entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoWeightRepository) Delete(ctx context.Context, id string) error {
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
