package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	scoringRepo "github.com/Brunilda90/judging26-app/database/repository/scoring"
	"github.com/Brunilda90/judging26-app/services/scoring"
)

// ScoringHandler exposes judge score sheets, the rubric, competitors and the
// leaderboards.
type ScoringHandler struct {
	Svc    scoring.Service
	Logger *zap.Logger
}

func NewScoringHandler(svc scoring.Service, logger *zap.Logger) *ScoringHandler {
	return &ScoringHandler{Svc: svc, Logger: logger}
}

func scoringRound(c *gin.Context) scoringRepo.Round {
	if c.Query("round") == string(scoringRepo.Finals) {
		return scoringRepo.Finals
	}
	return scoringRepo.Prelims
}

func (h *ScoringHandler) internalError(c *gin.Context, msg string, err error) {
	getLogger(c).Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

type sheetRequest struct {
	JudgeID      string             `json:"judgeId" binding:"required"`
	CompetitorID string             `json:"competitorId"`
	TeamName     string             `json:"teamName"`
	Answers      map[string]float64 `json:"answers" binding:"required"`
	Comments     string             `json:"comments"`
}

// SaveSheetHandler stores a judge's full answer sheet for a competitor. The
// competitor may be named by id or, for booked-but-unregistered teams, by
// team name, in which case it is created on the fly.
func (h *ScoringHandler) SaveSheetHandler(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	competitorID := req.CompetitorID
	if competitorID == "" {
		if req.TeamName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "competitorId or teamName is required"})
			return
		}
		competitor, err := h.Svc.GetOrCreateCompetitor(c.Request.Context(), req.TeamName)
		if err != nil {
			h.internalError(c, "failed to resolve competitor", err)
			return
		}
		competitorID = competitor.ID
	}

	if err := h.Svc.SaveSheet(c.Request.Context(), scoringRound(c), req.JudgeID, competitorID, req.Answers, req.Comments); err != nil {
		h.internalError(c, "failed to save score sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "competitorId": competitorID})
}

// SheetHandler returns a judge's saved answers and comments for a competitor.
func (h *ScoringHandler) SheetHandler(c *gin.Context) {
	answers, comments, err := h.Svc.SheetFor(c.Request.Context(), scoringRound(c), c.Param("judgeId"), c.Param("competitorId"))
	if err != nil {
		h.internalError(c, "failed to load score sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers, "comments": comments})
}

// JudgeScoresHandler returns a judge's aggregated score per competitor.
func (h *ScoringHandler) JudgeScoresHandler(c *gin.Context) {
	scores, err := h.Svc.ScoresForJudge(c.Request.Context(), scoringRound(c), c.Param("judgeId"))
	if err != nil {
		h.internalError(c, "failed to load judge scores", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

// LeaderboardHandler returns the dense-ranked leaderboard for a round.
func (h *ScoringHandler) LeaderboardHandler(c *gin.Context) {
	board, err := h.Svc.Leaderboard(c.Request.Context(), scoringRound(c))
	if err != nil {
		h.internalError(c, "failed to build leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

// FinalistsHandler returns the prelim top-N cut for the finals round.
func (h *ScoringHandler) FinalistsHandler(c *gin.Context) {
	n := 5
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}
	finalists, err := h.Svc.Finalists(c.Request.Context(), n)
	if err != nil {
		h.internalError(c, "failed to compute finalists", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finalists": finalists})
}

// MatrixHandler returns the per-question averages view.
func (h *ScoringHandler) MatrixHandler(c *gin.Context) {
	matrix, err := h.Svc.Matrix(c.Request.Context(), scoringRound(c))
	if err != nil {
		h.internalError(c, "failed to build scoring matrix", err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// CommentsHandler returns every judge's comments for a competitor.
func (h *ScoringHandler) CommentsHandler(c *gin.Context) {
	comments, err := h.Svc.CommentsForCompetitor(c.Request.Context(), scoringRound(c), c.Param("competitorId"))
	if err != nil {
		h.internalError(c, "failed to load comments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CompetitorsHandler lists all competitors.
func (h *ScoringHandler) CompetitorsHandler(c *gin.Context) {
	competitors, err := h.Svc.Competitors(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to list competitors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitors": competitors})
}

// UpdateCompetitorHandler edits a competitor's name and notes.
func (h *ScoringHandler) UpdateCompetitorHandler(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateCompetitor(c.Request.Context(), c.Param("id"), req.Name, req.Notes); err != nil {
		h.internalError(c, "failed to update competitor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteCompetitorHandler removes a competitor and all its scores.
func (h *ScoringHandler) DeleteCompetitorHandler(c *gin.Context) {
	if err := h.Svc.DeleteCompetitor(c.Request.Context(), c.Param("id")); err != nil {
		h.internalError(c, "failed to delete competitor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// QuestionsHandler lists the rubric questions.
func (h *ScoringHandler) QuestionsHandler(c *gin.Context) {
	questions, err := h.Svc.Questions(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to list questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// AddQuestionHandler adds a rubric question.
func (h *ScoringHandler) AddQuestionHandler(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	q, err := h.Svc.AddQuestion(c.Request.Context(), req.Prompt)
	if err != nil {
		h.internalError(c, "failed to add question", err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// UpdateQuestionHandler edits a question's prompt.
func (h *ScoringHandler) UpdateQuestionHandler(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateQuestion(c.Request.Context(), c.Param("id"), req.Prompt); err != nil {
		h.internalError(c, "failed to update question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteQuestionHandler removes a question; scores are recomputed without it.
func (h *ScoringHandler) DeleteQuestionHandler(c *gin.Context) {
	if err := h.Svc.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		h.internalError(c, "failed to delete question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// JudgesHandler lists judges.
func (h *ScoringHandler) JudgesHandler(c *gin.Context) {
	judges, err := h.Svc.Judges(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to list judges", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"judges": judges})
}
