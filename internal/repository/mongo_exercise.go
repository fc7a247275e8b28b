package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) *MongoExerciseRepository {
	coll := db.Collection("exercises")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"name": 1},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "target_muscles.primary", Value: 1}}},
	})

	return &MongoExerciseRepository{
		collection: coll,
	}
}

func (r *MongoExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	ex.CreatedAt = time.Now()
	ex.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, ex)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateExercise
		}
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	ex.ID = insertedHex(result.InsertedID)
	return nil
}

func (r *MongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var ex domain.Exercise
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&ex)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	return &ex, nil
}

func (r *MongoExerciseRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Exercise, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.Exercise{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []*domain.Exercise
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Exercise, len(found))
	for _, ex := range found {
		byID[ex.ID] = ex
	}
	ordered := make([]*domain.Exercise, 0, len(found))
	for _, id := range ids {
		if ex, ok := byID[id]; ok {
			ordered = append(ordered, ex)
		}
	}
	return ordered, nil
}

func (r *MongoExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]*domain.Exercise, int64, error) {
	query := exerciseQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count exercises: %w", err)
	}

	opts := paginate(options.Find().SetSort(bson.D{{Key: "name", Value: 1}}), filter.Page, filter.Limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	exercises := []*domain.Exercise{}
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

// exerciseQuery builds a case-insensitive match for every non-empty filter field
func exerciseQuery(f domain.ExerciseFilter) bson.M {
	query := bson.M{}
	exact := func(v string) bson.M {
		return bson.M{"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i"}
	}
	if f.Category != "" {
		query["category"] = exact(f.Category)
	}
	if f.MovementType != "" {
		query["movement_type"] = exact(f.MovementType)
	}
	if f.Equipment != "" {
		query["equipment"] = exact(f.Equipment)
	}
	if f.Difficulty != "" {
		query["difficulty"] = exact(f.Difficulty)
	}
	if f.TargetMuscle != "" {
		query["$or"] = bson.A{
			bson.M{"target_muscles.primary": exact(f.TargetMuscle)},
			bson.M{"target_muscles.secondary": exact(f.TargetMuscle)},
		}
	}
	if f.Search != "" {
		search := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		cond := bson.A{
			bson.M{"name": search},
			bson.M{"description": search},
		}
		if existing, ok := query["$or"]; ok {
			delete(query, "$or")
			query["$and"] = bson.A{bson.M{"$or": existing}, bson.M{"$or": cond}}
		} else {
			query["$or"] = cond
		}
	}
	return query
}
