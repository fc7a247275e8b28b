package repository

import (
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func insertedHex(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

// paginate applies 1-based page/limit to find options
func paginate(opts *options.FindOptions, page, limit int) *options.FindOptions {
	if limit <= 0 {
		return opts
	}
	if page < 1 {
		page = 1
	}
	return opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
}
