package repository

import (
	historyRepo "github.com/Brunilda90/judging26-app/database/repository/history"
	ledgerRepo "github.com/Brunilda90/judging26-app/database/repository/ledger"
	registrationRepo "github.com/Brunilda90/judging26-app/database/repository/registration"
	scoringRepo "github.com/Brunilda90/judging26-app/database/repository/scoring"
	userRepo "github.com/Brunilda90/judging26-app/database/repository/user"
)

// Re-export the ledger Repository interface and constructor.
type LedgerRepository = ledgerRepo.Repository

type LedgerProfile = ledgerRepo.Profile

var NewMongoLedger = ledgerRepo.NewMongoLedger

// Ledger profiles for the three booking types. Prelim and robot rooms may
// share codes; their booking spaces stay disjoint because each type owns its
// own collection.
var (
	PrelimLedger = ledgerRepo.Profile{
		Collection:    "prelim_bookings",
		ResourceField: "room",
		TeamUnique:    true,
	}
	MentorLedger = ledgerRepo.Profile{
		Collection:     "mentor_bookings",
		ResourceField:  "mentor_name",
		TeamSlotUnique: true,
	}
	RobotLedger = ledgerRepo.Profile{
		Collection:     "robot_bookings",
		ResourceField:  "room",
		TeamSlotUnique: true,
	}
)

// Re-export the history Repository interface and constructor.
type HistoryRepository = historyRepo.Repository

var NewMongoHistoryRepo = historyRepo.NewMongoHistoryRepo

// Re-export the registration Repository interface and constructor.
type RegistrationRepository = registrationRepo.Repository

var NewMongoRegistrationRepo = registrationRepo.NewMongoRegistrationRepo

// Re-export the scoring Repository interface and constructor.
type ScoringRepository = scoringRepo.Repository

var NewMongoScoringRepo = scoringRepo.NewMongoScoringRepo

// Re-export the user Repository interface and constructor.
type UserRepository = userRepo.Repository

var NewMongoUserRepo = userRepo.NewMongoUserRepo
