// FILE: database/repository/availability/indexes.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the availability collection.
func (r *mongoAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One document per participant and date
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "participant.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("date_email_unique"),
		},
		// Primary query pattern: all participants of a date in display order
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetName("date_position_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
