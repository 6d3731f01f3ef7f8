package scoring

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/database/repository"
	scoringRepo "github.com/Brunilda90/judging26-app/database/repository/scoring"
	"github.com/Brunilda90/judging26-app/models"
)

// Service covers judge sheet submission, the rubric, and the ranked
// leaderboards for both rounds.
type Service interface {
	SaveSheet(ctx context.Context, round scoringRepo.Round, judgeID, competitorID string, answers map[string]float64, comments string) error
	SheetFor(ctx context.Context, round scoringRepo.Round, judgeID, competitorID string) (map[string]float64, string, error)
	ScoresForJudge(ctx context.Context, round scoringRepo.Round, judgeID string) (map[string]float64, error)
	CommentsForCompetitor(ctx context.Context, round scoringRepo.Round, competitorID string) ([]models.JudgeComment, error)

	Leaderboard(ctx context.Context, round scoringRepo.Round) ([]models.LeaderboardEntry, error)
	Finalists(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
	Matrix(ctx context.Context, round scoringRepo.Round) (*models.ScoringMatrix, error)

	GetOrCreateCompetitor(ctx context.Context, name string) (*models.Competitor, error)
	Competitors(ctx context.Context) ([]models.Competitor, error)
	UpdateCompetitor(ctx context.Context, id, name, notes string) error
	DeleteCompetitor(ctx context.Context, id string) error

	Questions(ctx context.Context) ([]models.Question, error)
	AddQuestion(ctx context.Context, prompt string) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id, prompt string) error
	DeleteQuestion(ctx context.Context, id string) error

	Judges(ctx context.Context) ([]models.Judge, error)
	GetJudge(ctx context.Context, id string) (*models.Judge, error)
}

// DefaultService implements Service over the scoring repository.
type DefaultService struct {
	Repo   repository.ScoringRepository
	Logger *zap.Logger
}

func NewService(repo repository.ScoringRepository, logger *zap.Logger) *DefaultService {
	return &DefaultService{Repo: repo, Logger: logger}
}

// SaveSheet replaces one judge's full answer sheet for a competitor and
// stores the aggregated score (the mean of the submitted values). An empty
// sheet clears the judge's score for that competitor.
func (s *DefaultService) SaveSheet(ctx context.Context, round scoringRepo.Round, judgeID, competitorID string, answers map[string]float64, comments string) error {
	rows := make([]models.Answer, 0, len(answers))
	var total float64
	for questionID, value := range answers {
		rows = append(rows, models.Answer{
			JudgeID:      judgeID,
			CompetitorID: competitorID,
			QuestionID:   questionID,
			Value:        value,
		})
		total += value
	}

	var score *models.Score
	if len(rows) > 0 {
		score = &models.Score{
			JudgeID:      judgeID,
			CompetitorID: competitorID,
			Value:        total / float64(len(rows)),
			Comments:     comments,
		}
	}
	return s.Repo.ReplaceAnswers(ctx, round, judgeID, competitorID, rows, score)
}

// SheetFor returns a judge's saved per-question values and comments for a
// competitor, for pre-filling the scoring form.
func (s *DefaultService) SheetFor(ctx context.Context, round scoringRepo.Round, judgeID, competitorID string) (map[string]float64, string, error) {
	answers, err := s.Repo.AnswersFor(ctx, round, judgeID, competitorID)
	if err != nil {
		return nil, "", err
	}
	comments, err := s.Repo.ScoreComments(ctx, round, judgeID, competitorID)
	if err != nil {
		return nil, "", err
	}
	return answers, comments, nil
}

func (s *DefaultService) ScoresForJudge(ctx context.Context, round scoringRepo.Round, judgeID string) (map[string]float64, error) {
	return s.Repo.ScoresForJudge(ctx, round, judgeID)
}

func (s *DefaultService) CommentsForCompetitor(ctx context.Context, round scoringRepo.Round, competitorID string) ([]models.JudgeComment, error) {
	return s.Repo.CommentsForCompetitor(ctx, round, competitorID)
}

// Leaderboard returns the round's competitors ranked by average score,
// dense-ranked so tied averages share a rank.
func (s *DefaultService) Leaderboard(ctx context.Context, round scoringRepo.Round) ([]models.LeaderboardEntry, error) {
	entries, err := s.Repo.Leaderboard(ctx, round)
	if err != nil {
		return nil, err
	}
	DenseRank(entries)
	return entries, nil
}

// Finalists returns the top n prelim competitors that received at least one
// score. With dense ranking, ties at the cut line can push the list past n.
func (s *DefaultService) Finalists(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	board, err := s.Leaderboard(ctx, scoringRepo.Prelims)
	if err != nil {
		return nil, err
	}
	var finalists []models.LeaderboardEntry
	for _, e := range board {
		if e.NumScores == 0 {
			continue
		}
		if len(finalists) >= n && e.Rank != finalists[len(finalists)-1].Rank {
			break
		}
		finalists = append(finalists, e)
	}
	return finalists, nil
}

// Matrix assembles the per-question averages view for the admin console.
func (s *DefaultService) Matrix(ctx context.Context, round scoringRepo.Round) (*models.ScoringMatrix, error) {
	questions, err := s.Repo.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	competitors, err := s.Repo.ListCompetitors(ctx)
	if err != nil {
		return nil, err
	}
	matrix, counts, err := s.Repo.AnswerMatrix(ctx, round)
	if err != nil {
		return nil, err
	}
	return &models.ScoringMatrix{
		Questions:   questions,
		Competitors: competitors,
		Matrix:      matrix,
		JudgeCounts: counts,
	}, nil
}

// GetOrCreateCompetitor looks up a competitor by name, creating the entry on
// first use. Judges score teams by name; the competitor record appears the
// first time anyone scores the team.
func (s *DefaultService) GetOrCreateCompetitor(ctx context.Context, name string) (*models.Competitor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("competitor name is empty")
	}
	existing, err := s.Repo.GetCompetitorByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	c := &models.Competitor{Name: name}
	if err := s.Repo.CreateCompetitor(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.Info("created competitor", zap.String("name", name), zap.String("id", c.ID))
	return c, nil
}

func (s *DefaultService) Competitors(ctx context.Context) ([]models.Competitor, error) {
	return s.Repo.ListCompetitors(ctx)
}

func (s *DefaultService) UpdateCompetitor(ctx context.Context, id, name, notes string) error {
	return s.Repo.UpdateCompetitor(ctx, id, map[string]interface{}{
		"name":  strings.TrimSpace(name),
		"notes": notes,
	})
}

// DeleteCompetitor removes the competitor and, in the repository, every
// answer and score referencing it in both rounds.
func (s *DefaultService) DeleteCompetitor(ctx context.Context, id string) error {
	return s.Repo.DeleteCompetitor(ctx, id)
}

func (s *DefaultService) Questions(ctx context.Context) ([]models.Question, error) {
	return s.Repo.ListQuestions(ctx)
}

func (s *DefaultService) AddQuestion(ctx context.Context, prompt string) (*models.Question, error) {
	q := &models.Question{Prompt: strings.TrimSpace(prompt)}
	if q.Prompt == "" {
		return nil, fmt.Errorf("question prompt is empty")
	}
	if err := s.Repo.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *DefaultService) UpdateQuestion(ctx context.Context, id, prompt string) error {
	return s.Repo.UpdateQuestion(ctx, id, strings.TrimSpace(prompt))
}

// DeleteQuestion removes a question along with its answers, then rebuilds the
// aggregated scores for both rounds so averages no longer include it.
func (s *DefaultService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.Repo.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	for _, round := range []scoringRepo.Round{scoringRepo.Prelims, scoringRepo.Finals} {
		if err := s.Repo.RecomputeScores(ctx, round); err != nil {
			return fmt.Errorf("failed to recompute %s scores: %w", round, err)
		}
	}
	return nil
}

func (s *DefaultService) Judges(ctx context.Context) ([]models.Judge, error) {
	return s.Repo.ListJudges(ctx)
}

func (s *DefaultService) GetJudge(ctx context.Context, id string) (*models.Judge, error) {
	return s.Repo.GetJudge(ctx, id)
}
