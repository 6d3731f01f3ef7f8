// File: database/repository/ledger/indexes.go
package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the conflict model relies
// on. Two concurrent inserts for the same pair resolve here: exactly one
// commits, the other gets a duplicate-key error.
func (r *mongoLedgerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One occupant per (slot, resource).
		{
			Keys:    bson.D{{Key: "slot_label", Value: 1}, {Key: r.profile.ResourceField, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slot_resource"),
		},
	}
	if r.profile.TeamUnique {
		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    bson.D{{Key: "team_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_team"),
		})
	}
	if r.profile.TeamSlotUnique {
		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    bson.D{{Key: "team_name", Value: 1}, {Key: "slot_label", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_team_slot"),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", r.profile.Collection, err)
	}
	return nil
}
