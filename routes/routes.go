package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Brunilda90/judging26-app/handlers"
	"github.com/Brunilda90/judging26-app/middleware"
)

// RegisterAuthRoutes registers login.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterRegistrationRoutes registers the public registration form and the
// admin review endpoints.
func RegisterRegistrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/registrations")
	{
		api.POST("", hb.RegisterTeamHandler)
		api.GET("/lookup", hb.LookupRegistrationHandler)
		api.GET("/teams", hb.BookableTeamsHandler)

		// Review endpoints require an admin token.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("", hb.ListRegistrationsHandler)
		admin.GET("/:id", hb.GetRegistrationHandler)
		admin.POST("/:id/approve", hb.ApproveRegistrationHandler)
		admin.POST("/:id/reject", hb.RejectRegistrationHandler)
		admin.PUT("/:id", hb.UpdateRegistrationHandler)
	}
}

// RegisterPrelimRoutes registers the prelim judging booking endpoints.
func RegisterPrelimRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/prelim")
	{
		api.GET("/availability", hb.PrelimAvailabilityHandler)
		api.POST("/book", hb.PrelimBookHandler)
		api.POST("/switch", hb.PrelimSwitchHandler)

		judge := api.Group("")
		judge.Use(middleware.JWTAuthJudgeMiddleware())
		judge.GET("/rooms/:room/teams", hb.TeamsInRoomHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/bookings", hb.PrelimBookingsHandler)
		admin.PUT("/bookings/:id", hb.PrelimAdminUpdateHandler)
		admin.DELETE("/bookings/:id", hb.PrelimAdminDeleteHandler)
		admin.GET("/history", hb.PrelimHistoryHandler)
	}
}

// RegisterMentorRoutes registers the mentor session booking endpoints.
func RegisterMentorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mentors")
	{
		api.GET("/availability", hb.MentorAvailabilityHandler)
		api.POST("/book", hb.MentorBookHandler)
		api.POST("/book-by-room", hb.MentorBookByRoomHandler)
		api.DELETE("/bookings/:id", hb.MentorCancelHandler)
		api.GET("/bookings", hb.MentorTeamBookingsHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/all-bookings", hb.MentorBookingsHandler)
		admin.PUT("/bookings/:id", hb.MentorAdminUpdateHandler)
		admin.DELETE("/admin/bookings/:id", hb.MentorAdminDeleteHandler)
	}
}

// RegisterRobotRoutes registers the robot demo session booking endpoints.
func RegisterRobotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/robots")
	{
		api.GET("/availability", hb.RobotAvailabilityHandler)
		api.POST("/book", hb.RobotBookHandler)
		api.DELETE("/bookings/:id", hb.RobotCancelHandler)
		api.GET("/bookings", hb.RobotTeamBookingsHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/all-bookings", hb.RobotBookingsHandler)
		admin.PUT("/bookings/:id", hb.RobotAdminUpdateHandler)
		admin.DELETE("/admin/bookings/:id", hb.RobotAdminDeleteHandler)
	}
}

// RegisterScoringRoutes registers judge scoring and leaderboard endpoints.
func RegisterScoringRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scoring")
	{
		judge := api.Group("")
		judge.Use(middleware.JWTAuthJudgeMiddleware())
		judge.POST("/sheets", hb.SaveSheetHandler)
		judge.GET("/sheets/:judgeId/:competitorId", hb.SheetHandler)
		judge.GET("/judges/:judgeId/scores", hb.JudgeScoresHandler)
		judge.GET("/questions", hb.QuestionsHandler)
		judge.GET("/competitors", hb.CompetitorsHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/leaderboard", hb.LeaderboardHandler)
		admin.GET("/finalists", hb.FinalistsHandler)
		admin.GET("/matrix", hb.MatrixHandler)
		admin.GET("/competitors/:competitorId/comments", hb.CommentsHandler)
		admin.PUT("/competitors/:id", hb.UpdateCompetitorHandler)
		admin.DELETE("/competitors/:id", hb.DeleteCompetitorHandler)
		admin.POST("/questions", hb.AddQuestionHandler)
		admin.PUT("/questions/:id", hb.UpdateQuestionHandler)
		admin.DELETE("/questions/:id", hb.DeleteQuestionHandler)
		admin.GET("/judges", hb.JudgesHandler)
	}
}

// RegisterAdminRoutes registers judge account administration.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.POST("/judges", hb.CreateJudgeAccountHandler)
		adminGroup.PUT("/judges/:judgeId", hb.UpdateJudgeAccountHandler)
		adminGroup.DELETE("/judges/:judgeId", hb.DeleteJudgeAccountHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterRegistrationRoutes(r, hb)
	RegisterPrelimRoutes(r, hb)
	RegisterMentorRoutes(r, hb)
	RegisterRobotRoutes(r, hb)
	RegisterScoringRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
