package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every endpoint the router wires up.
type HandlerBundle struct {
	// Auth endpoints
	LoginHandler gin.HandlerFunc

	// Registration endpoints
	RegisterTeamHandler        gin.HandlerFunc
	LookupRegistrationHandler  gin.HandlerFunc
	BookableTeamsHandler       gin.HandlerFunc
	ListRegistrationsHandler   gin.HandlerFunc
	GetRegistrationHandler     gin.HandlerFunc
	ApproveRegistrationHandler gin.HandlerFunc
	RejectRegistrationHandler  gin.HandlerFunc
	UpdateRegistrationHandler  gin.HandlerFunc

	// Prelim booking endpoints
	PrelimAvailabilityHandler gin.HandlerFunc
	PrelimBookHandler         gin.HandlerFunc
	PrelimSwitchHandler       gin.HandlerFunc
	PrelimBookingsHandler     gin.HandlerFunc
	PrelimAdminUpdateHandler  gin.HandlerFunc
	PrelimAdminDeleteHandler  gin.HandlerFunc
	PrelimHistoryHandler      gin.HandlerFunc
	TeamsInRoomHandler        gin.HandlerFunc

	// Mentor session endpoints
	MentorAvailabilityHandler gin.HandlerFunc
	MentorBookHandler         gin.HandlerFunc
	MentorBookByRoomHandler   gin.HandlerFunc
	MentorCancelHandler       gin.HandlerFunc
	MentorTeamBookingsHandler gin.HandlerFunc
	MentorBookingsHandler     gin.HandlerFunc
	MentorAdminUpdateHandler  gin.HandlerFunc
	MentorAdminDeleteHandler  gin.HandlerFunc

	// Robot session endpoints
	RobotAvailabilityHandler gin.HandlerFunc
	RobotBookHandler         gin.HandlerFunc
	RobotCancelHandler       gin.HandlerFunc
	RobotTeamBookingsHandler gin.HandlerFunc
	RobotBookingsHandler     gin.HandlerFunc
	RobotAdminUpdateHandler  gin.HandlerFunc
	RobotAdminDeleteHandler  gin.HandlerFunc

	// Scoring endpoints
	SaveSheetHandler        gin.HandlerFunc
	SheetHandler            gin.HandlerFunc
	JudgeScoresHandler      gin.HandlerFunc
	LeaderboardHandler      gin.HandlerFunc
	FinalistsHandler        gin.HandlerFunc
	MatrixHandler           gin.HandlerFunc
	CommentsHandler         gin.HandlerFunc
	CompetitorsHandler      gin.HandlerFunc
	UpdateCompetitorHandler gin.HandlerFunc
	DeleteCompetitorHandler gin.HandlerFunc
	QuestionsHandler        gin.HandlerFunc
	AddQuestionHandler      gin.HandlerFunc
	UpdateQuestionHandler   gin.HandlerFunc
	DeleteQuestionHandler   gin.HandlerFunc
	JudgesHandler           gin.HandlerFunc

	// Judge account endpoints
	CreateJudgeAccountHandler gin.HandlerFunc
	UpdateJudgeAccountHandler gin.HandlerFunc
	DeleteJudgeAccountHandler gin.HandlerFunc
}
