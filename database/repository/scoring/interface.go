// File: database/repository/scoring/interface.go
package scoringRepo

import (
	"context"

	"github.com/Brunilda90/judging26-app/database"
	"github.com/Brunilda90/judging26-app/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Round selects which pair of collections scoring operations run against.
type Round string

const (
	Prelims Round = "prelims"
	Finals  Round = "finals"
)

// Repository owns judges, competitors, questions and the per-round answers and
// scores collections.
type Repository interface {
	EnsureIndexes(ctx context.Context) error

	CreateJudge(ctx context.Context, judge *models.Judge) error
	GetJudge(ctx context.Context, id string) (*models.Judge, error)
	ListJudges(ctx context.Context) ([]models.Judge, error)
	UpdateJudge(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteJudge(ctx context.Context, id string) error

	CreateCompetitor(ctx context.Context, competitor *models.Competitor) error
	GetCompetitor(ctx context.Context, id string) (*models.Competitor, error)
	GetCompetitorByName(ctx context.Context, name string) (*models.Competitor, error)
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	UpdateCompetitor(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteCompetitor(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, question *models.Question) error
	ListQuestions(ctx context.Context) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, id, prompt string) error
	DeleteQuestion(ctx context.Context, id string) error

	// ReplaceAnswers rewrites one judge's sheet for one competitor: all prior
	// answers and the aggregated score are replaced wholesale.
	ReplaceAnswers(ctx context.Context, round Round, judgeID, competitorID string, answers []models.Answer, score *models.Score) error
	AnswersFor(ctx context.Context, round Round, judgeID, competitorID string) (map[string]float64, error)
	ScoresForJudge(ctx context.Context, round Round, judgeID string) (map[string]float64, error)
	ScoreComments(ctx context.Context, round Round, judgeID, competitorID string) (string, error)
	CommentsForCompetitor(ctx context.Context, round Round, competitorID string) ([]models.JudgeComment, error)

	// RecomputeScores rebuilds the scores collection by averaging the
	// surviving answers per (judge, competitor). Used after question deletion.
	RecomputeScores(ctx context.Context, round Round) error

	Leaderboard(ctx context.Context, round Round) ([]models.LeaderboardEntry, error)
	AnswerMatrix(ctx context.Context, round Round) (map[string]map[string]float64, map[string]int, error)
}

type mongoScoringRepo struct {
	db *mongo.Database
}

// NewMongoScoringRepo constructs the MongoDB-backed scoring repository.
func NewMongoScoringRepo() Repository {
	return &mongoScoringRepo{db: database.DB()}
}

func (r *mongoScoringRepo) answersColl(round Round) *mongo.Collection {
	if round == Finals {
		return r.db.Collection("finals_answers")
	}
	return r.db.Collection("answers")
}

func (r *mongoScoringRepo) scoresColl(round Round) *mongo.Collection {
	if round == Finals {
		return r.db.Collection("finals_scores")
	}
	return r.db.Collection("scores")
}
