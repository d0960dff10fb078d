// Package mongodao stores festivals, users and planned visits in MongoDB
// collections. It reuses the record types of package dao, so the driver can
// be swapped without touching the repository layer.
package mongodao

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	FestivalsCollection = "festivals"
	UsersCollection     = "users"
	VisitsCollection    = "plannedvisits"
)

// InitCollections creates the indexes the DAOs rely on. The unique email
// index is what turns a duplicate registration into ErrUserEmailExists.
func InitCollections(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		FestivalsCollection: {
			{Keys: bson.D{{Key: "startDate", Value: 1}}},
			{Keys: bson.D{{Key: "isHiddenGem", Value: 1}, {Key: "startDate", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		VisitsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "visitDate", Value: 1}}},
			{Keys: bson.D{{Key: "festivalId", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s -> %w", name, err)
		}
	}

	return nil
}

// ValidID reports whether id is a hex ObjectID, the only id shape this
// driver hands out.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}
