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

// MongoRefreshTokenRepository stores refresh token chains in "refresh_tokens".
// Expired documents are dropped by a TTL index.
type MongoRefreshTokenRepository struct {
	collection *mongo.Collection
}

func NewMongoRefreshTokenRepository(db *mongo.Database) *MongoRefreshTokenRepository {
	coll := db.Collection("refresh_tokens")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "family", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})

	return &MongoRefreshTokenRepository{collection: coll}
}

func (r *MongoRefreshTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	token.ID = insertedHex(res.InsertedID)
	return nil
}

func (r *MongoRefreshTokenRepository) ByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	if err := r.collection.FindOne(ctx, bson.M{"token_hash": hash}).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// MarkRotated only matches a token nobody revoked yet, so of two concurrent
// refreshes with the same token exactly one wins.
func (r *MongoRefreshTokenRepository) MarkRotated(ctx context.Context, hash, replacedBy string, at time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"token_hash": hash, "revoked_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revoked_at": at, "replaced_by": replacedBy}},
	)
	if err != nil {
		return false, fmt.Errorf("rotate refresh token: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoRefreshTokenRepository) RevokeFamily(ctx context.Context, family string, at time.Time) error {
	return r.revokeWhere(ctx, bson.M{"family": family}, at)
}

func (r *MongoRefreshTokenRepository) RevokeUser(ctx context.Context, userID string, at time.Time) error {
	return r.revokeWhere(ctx, bson.M{"user_id": userID}, at)
}

func (r *MongoRefreshTokenRepository) revokeWhere(ctx context.Context, filter bson.M, at time.Time) error {
	filter["revoked_at"] = bson.M{"$exists": false}
	if _, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"revoked_at": at}}); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
