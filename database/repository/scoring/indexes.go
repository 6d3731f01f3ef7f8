// File: database/repository/scoring/indexes.go
package scoringRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates uniqueness constraints across the scoring
// collections: one score per (judge, competitor) and one answer per
// (judge, competitor, question), for both rounds.
func (r *mongoScoringRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}
	for _, name := range []string{"judges", "competitors", "questions"} {
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{uniqueID}); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	// Judge emails are optional, so the unique index is sparse.
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_email"),
	}
	if _, err := r.db.Collection("judges").Indexes().CreateMany(ctx, []mongo.IndexModel{emailIdx}); err != nil {
		return fmt.Errorf("failed to create judge email index: %w", err)
	}

	for _, round := range []Round{Prelims, Finals} {
		scoreIdx := mongo.IndexModel{
			Keys:    bson.D{{Key: "judge_id", Value: 1}, {Key: "competitor_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_judge_competitor"),
		}
		if _, err := r.scoresColl(round).Indexes().CreateMany(ctx, []mongo.IndexModel{scoreIdx}); err != nil {
			return fmt.Errorf("failed to create %s score indexes: %w", round, err)
		}
		answerIdx := mongo.IndexModel{
			Keys: bson.D{
				{Key: "judge_id", Value: 1},
				{Key: "competitor_id", Value: 1},
				{Key: "question_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_judge_competitor_question"),
		}
		if _, err := r.answersColl(round).Indexes().CreateMany(ctx, []mongo.IndexModel{answerIdx}); err != nil {
			return fmt.Errorf("failed to create %s answer indexes: %w", round, err)
		}
	}
	return nil
}
