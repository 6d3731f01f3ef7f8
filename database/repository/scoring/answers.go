// File: database/repository/scoring/answers.go
package scoringRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Brunilda90/judging26-app/models"
)

// ReplaceAnswers rewrites a judge's sheet for a competitor. Prior answers and
// the aggregated score are deleted first, so saving with an empty sheet clears
// the judge's scoring for that competitor.
func (r *mongoScoringRepo) ReplaceAnswers(ctx context.Context, round Round, judgeID, competitorID string, answers []models.Answer, score *models.Score) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pairFilter := bson.M{"judge_id": judgeID, "competitor_id": competitorID}
	if _, err := r.answersColl(round).DeleteMany(ctx, pairFilter); err != nil {
		return err
	}
	if _, err := r.scoresColl(round).DeleteMany(ctx, pairFilter); err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}

	docs := make([]interface{}, len(answers))
	for i, a := range answers {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.JudgeID = judgeID
		a.CompetitorID = competitorID
		docs[i] = a
	}
	if _, err := r.answersColl(round).InsertMany(ctx, docs); err != nil {
		return err
	}

	if score == nil {
		return nil
	}
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	score.JudgeID = judgeID
	score.CompetitorID = competitorID
	_, err := r.scoresColl(round).InsertOne(ctx, score)
	return err
}

func (r *mongoScoringRepo) AnswersFor(ctx context.Context, round Round, judgeID, competitorID string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.answersColl(round).Find(ctx, bson.M{"judge_id": judgeID, "competitor_id": competitorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []models.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(answers))
	for _, a := range answers {
		values[a.QuestionID] = a.Value
	}
	return values, nil
}

func (r *mongoScoringRepo) ScoresForJudge(ctx context.Context, round Round, judgeID string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.scoresColl(round).Find(ctx, bson.M{"judge_id": judgeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []models.Score
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(scores))
	for _, s := range scores {
		values[s.CompetitorID] = s.Value
	}
	return values, nil
}

func (r *mongoScoringRepo) ScoreComments(ctx context.Context, round Round, judgeID, competitorID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var score models.Score
	err := r.scoresColl(round).FindOne(ctx, bson.M{"judge_id": judgeID, "competitor_id": competitorID}).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return score.Comments, nil
}

func (r *mongoScoringRepo) CommentsForCompetitor(ctx context.Context, round Round, competitorID string) ([]models.JudgeComment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"competitor_id": competitorID,
		"comments":      bson.M{"$exists": true, "$nin": bson.A{"", nil}},
	}
	cursor, err := r.scoresColl(round).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []models.Score
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}

	comments := make([]models.JudgeComment, 0, len(scores))
	for _, s := range scores {
		name := "Judge"
		if judge, err := r.GetJudge(ctx, s.JudgeID); err == nil && judge != nil {
			name = judge.Name
		}
		comments = append(comments, models.JudgeComment{JudgeName: name, Comments: s.Comments})
	}
	return comments, nil
}

// RecomputeScores rebuilds the round's scores from its surviving answers,
// averaging per (judge, competitor). Comments do not survive a recompute.
func (r *mongoScoringRepo) RecomputeScores(ctx context.Context, round Round) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if _, err := r.scoresColl(round).DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "judge_id", Value: "$judge_id"},
				{Key: "competitor_id", Value: "$competitor_id"},
			}},
			{Key: "avg_value", Value: bson.D{{Key: "$avg", Value: "$value"}}},
		}}},
	}
	cursor, err := r.answersColl(round).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			JudgeID      string `bson:"judge_id"`
			CompetitorID string `bson:"competitor_id"`
		} `bson:"_id"`
		AvgValue float64 `bson:"avg_value"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		docs[i] = models.Score{
			ID:           uuid.New().String(),
			JudgeID:      row.ID.JudgeID,
			CompetitorID: row.ID.CompetitorID,
			Value:        row.AvgValue,
		}
	}
	_, err = r.scoresColl(round).InsertMany(ctx, docs)
	return err
}
