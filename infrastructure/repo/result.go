package repo

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo stores completed levels.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a ResultRepo over the given database and collection.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) *ResultRepo {
	return &ResultRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index serving ByPlayer.
func (r *ResultRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerID", Value: 1}, {Key: "completedAt", Value: -1}},
	})
	return err
}

// Save inserts a result.
func (r *ResultRepo) Save(ctx context.Context, result *game.Result) error {
	if _, err := r.collection.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("saving result %s: %w", result.ID, err)
	}
	return nil
}

// ByPlayer lists up to limit results of a player, most recent first.
func (r *ResultRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerID": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing results of %s: %w", playerID, err)
	}
	defer cursor.Close(ctx)

	results := make([]*game.Result, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding results of %s: %w", playerID, err)
	}
	return results, nil
}
