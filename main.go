package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/database"
	"github.com/Brunilda90/judging26-app/database/repository"
	"github.com/Brunilda90/judging26-app/handlers"
	"github.com/Brunilda90/judging26-app/middleware"
	"github.com/Brunilda90/judging26-app/routes"
	"github.com/Brunilda90/judging26-app/services/booking"
	"github.com/Brunilda90/judging26-app/services/registration"
	"github.com/Brunilda90/judging26-app/services/scoring"
	"github.com/Brunilda90/judging26-app/services/user"
	"github.com/Brunilda90/judging26-app/utils"
)

func main() {
	config.LoadConfig()
	config.LoadEventSchedule()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	prelimRepo := repository.NewMongoLedger(repository.PrelimLedger)
	mentorRepo := repository.NewMongoLedger(repository.MentorLedger)
	robotRepo := repository.NewMongoLedger(repository.RobotLedger)
	historyRepo := repository.NewMongoHistoryRepo()
	registrationRepo := repository.NewMongoRegistrationRepo()
	scoringRepo := repository.NewMongoScoringRepo()
	userRepo := repository.NewMongoUserRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, ensure := range []func(context.Context) error{
		prelimRepo.EnsureIndexes,
		mentorRepo.EnsureIndexes,
		robotRepo.EnsureIndexes,
		historyRepo.EnsureIndexes,
		registrationRepo.EnsureIndexes,
		scoringRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}
	cancel()

	availabilityCache := booking.NewRedisAvailabilityCache(utils.GetCacheClient())

	// services.
	prelimService := &booking.DefaultPrelimService{
		Repo:     prelimRepo,
		Audit:    historyRepo,
		Registry: registrationRepo,
		Cache:    availabilityCache,
		Logger:   logger,
	}
	mentorService := &booking.DefaultMentorService{
		Repo:     mentorRepo,
		Schedule: config.Schedule,
		Cache:    availabilityCache,
		Logger:   logger,
	}
	robotService := &booking.DefaultRobotService{
		Repo:     robotRepo,
		Schedule: config.Schedule,
		Cache:    availabilityCache,
		Logger:   logger,
	}
	scoringService := scoring.NewService(scoringRepo, logger)
	registrationService := registration.NewService(registrationRepo, scoringService, logger)
	userService := user.NewService(userRepo, scoringRepo, logger)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureDefaultAdmin(seedCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to seed default admin: %v", err)
	}
	seedCancel()

	prelimHandler := handlers.NewPrelimHandler(prelimService, config.Schedule, logger)
	mentorHandler := handlers.NewMentorHandler(mentorService, config.Schedule, logger)
	robotHandler := handlers.NewRobotHandler(robotService, config.Schedule, logger)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, logger)
	scoringHandler := handlers.NewScoringHandler(scoringService, logger)
	authHandler := handlers.NewAuthHandler(userService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		LoginHandler: authHandler.LoginHandler,

		// Registration endpoints.
		RegisterTeamHandler:        registrationHandler.RegisterHandler,
		LookupRegistrationHandler:  registrationHandler.LookupHandler,
		BookableTeamsHandler:       registrationHandler.BookableTeamsHandler,
		ListRegistrationsHandler:   registrationHandler.ListHandler,
		GetRegistrationHandler:     registrationHandler.GetHandler,
		ApproveRegistrationHandler: registrationHandler.ApproveHandler,
		RejectRegistrationHandler:  registrationHandler.RejectHandler,
		UpdateRegistrationHandler:  registrationHandler.UpdateHandler,

		// Prelim booking endpoints.
		PrelimAvailabilityHandler: prelimHandler.AvailabilityHandler,
		PrelimBookHandler:         prelimHandler.BookHandler,
		PrelimSwitchHandler:       prelimHandler.SwitchHandler,
		PrelimBookingsHandler:     prelimHandler.BookingsHandler,
		PrelimAdminUpdateHandler:  prelimHandler.AdminUpdateHandler,
		PrelimAdminDeleteHandler:  prelimHandler.AdminDeleteHandler,
		PrelimHistoryHandler:      prelimHandler.HistoryHandler,
		TeamsInRoomHandler:        prelimHandler.TeamsInRoomHandler,

		// Mentor session endpoints.
		MentorAvailabilityHandler: mentorHandler.AvailabilityHandler,
		MentorBookHandler:         mentorHandler.BookHandler,
		MentorBookByRoomHandler:   mentorHandler.BookByRoomHandler,
		MentorCancelHandler:       mentorHandler.CancelHandler,
		MentorTeamBookingsHandler: mentorHandler.TeamBookingsHandler,
		MentorBookingsHandler:     mentorHandler.BookingsHandler,
		MentorAdminUpdateHandler:  mentorHandler.AdminUpdateHandler,
		MentorAdminDeleteHandler:  mentorHandler.AdminDeleteHandler,

		// Robot session endpoints.
		RobotAvailabilityHandler: robotHandler.AvailabilityHandler,
		RobotBookHandler:         robotHandler.BookHandler,
		RobotCancelHandler:       robotHandler.CancelHandler,
		RobotTeamBookingsHandler: robotHandler.TeamBookingsHandler,
		RobotBookingsHandler:     robotHandler.BookingsHandler,
		RobotAdminUpdateHandler:  robotHandler.AdminUpdateHandler,
		RobotAdminDeleteHandler:  robotHandler.AdminDeleteHandler,

		// Scoring endpoints.
		SaveSheetHandler:        scoringHandler.SaveSheetHandler,
		SheetHandler:            scoringHandler.SheetHandler,
		JudgeScoresHandler:      scoringHandler.JudgeScoresHandler,
		LeaderboardHandler:      scoringHandler.LeaderboardHandler,
		FinalistsHandler:        scoringHandler.FinalistsHandler,
		MatrixHandler:           scoringHandler.MatrixHandler,
		CommentsHandler:         scoringHandler.CommentsHandler,
		CompetitorsHandler:      scoringHandler.CompetitorsHandler,
		UpdateCompetitorHandler: scoringHandler.UpdateCompetitorHandler,
		DeleteCompetitorHandler: scoringHandler.DeleteCompetitorHandler,
		QuestionsHandler:        scoringHandler.QuestionsHandler,
		AddQuestionHandler:      scoringHandler.AddQuestionHandler,
		UpdateQuestionHandler:   scoringHandler.UpdateQuestionHandler,
		DeleteQuestionHandler:   scoringHandler.DeleteQuestionHandler,
		JudgesHandler:           scoringHandler.JudgesHandler,

		// Judge account endpoints.
		CreateJudgeAccountHandler: authHandler.CreateJudgeAccountHandler,
		UpdateJudgeAccountHandler: authHandler.UpdateJudgeAccountHandler,
		DeleteJudgeAccountHandler: authHandler.DeleteJudgeAccountHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Wait for an interrupt signal, then shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Sugar().Info("Server exited cleanly")
}
