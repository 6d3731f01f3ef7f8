package models

// User roles.
const (
	RoleAdmin = "admin"
	RoleJudge = "judge"
)

// Judge rounds.
const (
	RoundPrelims = "prelims"
	RoundFinals  = "finals"
)

// User is a login account. Judge accounts carry the linked judge id and the
// round that judge is assigned to.
type User struct {
	ID           string `json:"id" bson:"id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`
	JudgeID      string `json:"judgeId,omitempty" bson:"judge_id,omitempty"`
	JudgeRound   string `json:"judgeRound,omitempty" bson:"judge_round,omitempty"`
}
