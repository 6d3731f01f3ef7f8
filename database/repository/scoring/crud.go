// File: database/repository/scoring/crud.go
package scoringRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Brunilda90/judging26-app/models"
)

func (r *mongoScoringRepo) CreateJudge(ctx context.Context, judge *models.Judge) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if judge.ID == "" {
		judge.ID = uuid.New().String()
	}
	_, err := r.db.Collection("judges").InsertOne(ctx, judge)
	return err
}

func (r *mongoScoringRepo) GetJudge(ctx context.Context, id string) (*models.Judge, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var judge models.Judge
	err := r.db.Collection("judges").FindOne(ctx, bson.M{"id": id}).Decode(&judge)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &judge, nil
}

func (r *mongoScoringRepo) ListJudges(ctx context.Context) ([]models.Judge, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.db.Collection("judges").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var judges []models.Judge
	if err := cursor.All(ctx, &judges); err != nil {
		return nil, err
	}
	return judges, nil
}

func (r *mongoScoringRepo) UpdateJudge(ctx context.Context, id string, patch map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.Collection("judges").UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteJudge removes the judge and every score and answer they produced, in
// both rounds.
func (r *mongoScoringRepo) DeleteJudge(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"judge_id": id}
	for _, round := range []Round{Prelims, Finals} {
		if _, err := r.scoresColl(round).DeleteMany(ctx, filter); err != nil {
			return err
		}
		if _, err := r.answersColl(round).DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	_, err := r.db.Collection("judges").DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *mongoScoringRepo) CreateCompetitor(ctx context.Context, competitor *models.Competitor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if competitor.ID == "" {
		competitor.ID = uuid.New().String()
	}
	_, err := r.db.Collection("competitors").InsertOne(ctx, competitor)
	return err
}

func (r *mongoScoringRepo) GetCompetitor(ctx context.Context, id string) (*models.Competitor, error) {
	return r.findCompetitor(ctx, bson.M{"id": id})
}

func (r *mongoScoringRepo) GetCompetitorByName(ctx context.Context, name string) (*models.Competitor, error) {
	return r.findCompetitor(ctx, bson.M{"name": name})
}

func (r *mongoScoringRepo) findCompetitor(ctx context.Context, filter bson.M) (*models.Competitor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var competitor models.Competitor
	err := r.db.Collection("competitors").FindOne(ctx, filter).Decode(&competitor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &competitor, nil
}

func (r *mongoScoringRepo) ListCompetitors(ctx context.Context) ([]models.Competitor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.db.Collection("competitors").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var competitors []models.Competitor
	if err := cursor.All(ctx, &competitors); err != nil {
		return nil, err
	}
	return competitors, nil
}

func (r *mongoScoringRepo) UpdateCompetitor(ctx context.Context, id string, patch map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.Collection("competitors").UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteCompetitor removes the competitor and every score and answer recorded
// for it, in both rounds.
func (r *mongoScoringRepo) DeleteCompetitor(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"competitor_id": id}
	for _, round := range []Round{Prelims, Finals} {
		if _, err := r.scoresColl(round).DeleteMany(ctx, filter); err != nil {
			return err
		}
		if _, err := r.answersColl(round).DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	_, err := r.db.Collection("competitors").DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *mongoScoringRepo) CreateQuestion(ctx context.Context, question *models.Question) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if question.ID == "" {
		question.ID = uuid.New().String()
	}
	_, err := r.db.Collection("questions").InsertOne(ctx, question)
	return err
}

func (r *mongoScoringRepo) ListQuestions(ctx context.Context) ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.db.Collection("questions").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *mongoScoringRepo) UpdateQuestion(ctx context.Context, id, prompt string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.Collection("questions").UpdateOne(ctx,
		bson.M{"id": id}, bson.M{"$set": bson.M{"prompt": prompt}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteQuestion removes the question and its answers in both rounds. The
// caller is expected to recompute scores afterwards.
func (r *mongoScoringRepo) DeleteQuestion(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, round := range []Round{Prelims, Finals} {
		if _, err := r.answersColl(round).DeleteMany(ctx, bson.M{"question_id": id}); err != nil {
			return err
		}
	}
	_, err := r.db.Collection("questions").DeleteOne(ctx, bson.M{"id": id})
	return err
}
