// File: database/repository/scoring/leaderboard.go
package scoringRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Brunilda90/judging26-app/models"
)

// Leaderboard joins competitors with their scores and returns them sorted by
// average descending. Competitors without scores come back with zeros; rank
// assignment is the scoring service's job.
func (r *mongoScoringRepo) Leaderboard(ctx context.Context, round Round) ([]models.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.scoresColl(round).Name()},
			{Key: "localField", Value: "id"},
			{Key: "foreignField", Value: "competitor_id"},
			{Key: "as", Value: "score_docs"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "num_scores", Value: bson.D{{Key: "$size", Value: "$score_docs"}}},
			{Key: "total_score", Value: bson.D{{Key: "$sum", Value: "$score_docs.value"}}},
			{Key: "avg_score", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gt", Value: bson.A{bson.D{{Key: "$size", Value: "$score_docs"}}, 0}}},
				bson.D{{Key: "$avg", Value: "$score_docs.value"}},
				0,
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "competitor_id", Value: "$id"},
			{Key: "competitor_name", Value: "$name"},
			{Key: "num_scores", Value: 1},
			{Key: "total_score", Value: 1},
			{Key: "avg_score", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "avg_score", Value: -1}}}},
	}

	cursor, err := r.db.Collection("competitors").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AnswerMatrix returns per-question averages keyed competitor→question, plus
// how many judges scored each competitor.
func (r *mongoScoringRepo) AnswerMatrix(ctx context.Context, round Round) (map[string]map[string]float64, map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "competitor_id", Value: "$competitor_id"},
				{Key: "question_id", Value: "$question_id"},
			}},
			{Key: "avg_value", Value: bson.D{{Key: "$avg", Value: "$value"}}},
		}}},
	}
	cursor, err := r.answersColl(round).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			CompetitorID string `bson:"competitor_id"`
			QuestionID   string `bson:"question_id"`
		} `bson:"_id"`
		AvgValue float64 `bson:"avg_value"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, nil, err
	}

	matrix := make(map[string]map[string]float64)
	for _, row := range rows {
		cell, ok := matrix[row.ID.CompetitorID]
		if !ok {
			cell = make(map[string]float64)
			matrix[row.ID.CompetitorID] = cell
		}
		cell[row.ID.QuestionID] = row.AvgValue
	}

	countCursor, err := r.scoresColl(round).Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$competitor_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, nil, err
	}
	defer countCursor.Close(ctx)

	var counts []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := countCursor.All(ctx, &counts); err != nil {
		return nil, nil, err
	}
	judgeCounts := make(map[string]int, len(counts))
	for _, c := range counts {
		judgeCounts[c.ID] = c.Count
	}
	return matrix, judgeCounts, nil
}
