package models

// Judge is a judging identity. PrelimRoom is set for prelim-round judges who
// are stationed in a single room.
type Judge struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email,omitempty" bson:"email,omitempty"`
	PrelimRoom string `json:"prelimRoom,omitempty" bson:"prelim_room,omitempty"`
}

// Competitor is a scoreable entry on the leaderboard, created when a
// registration is approved or a booked team is first scored.
type Competitor struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Notes string `json:"notes" bson:"notes"`
}

// Question is one scoring rubric prompt.
type Question struct {
	ID     string `json:"id" bson:"id"`
	Prompt string `json:"prompt" bson:"prompt"`
}

// Answer is one judge's value for one question about one competitor.
type Answer struct {
	ID           string  `json:"id" bson:"id"`
	JudgeID      string  `json:"judgeId" bson:"judge_id"`
	CompetitorID string  `json:"competitorId" bson:"competitor_id"`
	QuestionID   string  `json:"questionId" bson:"question_id"`
	Value        float64 `json:"value" bson:"value"`
}

// Score is a judge's aggregated score for a competitor: the average of that
// judge's answers, plus free-form comments.
type Score struct {
	ID           string  `json:"id" bson:"id"`
	JudgeID      string  `json:"judgeId" bson:"judge_id"`
	CompetitorID string  `json:"competitorId" bson:"competitor_id"`
	Value        float64 `json:"value" bson:"value"`
	Comments     string  `json:"comments,omitempty" bson:"comments,omitempty"`
}

// LeaderboardEntry is one row of the ranked leaderboard. Rank is dense: tied
// scores share a rank and the next distinct score increments it by one.
type LeaderboardEntry struct {
	CompetitorID   string  `json:"competitorId" bson:"competitor_id"`
	CompetitorName string  `json:"competitorName" bson:"competitor_name"`
	NumScores      int     `json:"numScores" bson:"num_scores"`
	TotalScore     float64 `json:"totalScore" bson:"total_score"`
	AvgScore       float64 `json:"avgScore" bson:"avg_score"`
	Rank           int     `json:"rank" bson:"-"`
}

// JudgeComment pairs a judge's name with the comments they left for a
// competitor.
type JudgeComment struct {
	JudgeName string `json:"judgeName"`
	Comments  string `json:"comments"`
}

// ScoringMatrix is the per-question averages view: Matrix[competitorID][questionID]
// is the mean answer value across judges, and JudgeCounts[competitorID] is how
// many judges scored that competitor.
type ScoringMatrix struct {
	Questions   []Question                    `json:"questions"`
	Competitors []Competitor                  `json:"competitors"`
	Matrix      map[string]map[string]float64 `json:"matrix"`
	JudgeCounts map[string]int                `json:"judgeCounts"`
}
