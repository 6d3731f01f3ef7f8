package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/database/repository"
	userRepo "github.com/Brunilda90/judging26-app/database/repository/user"
	"github.com/Brunilda90/judging26-app/models"
	"github.com/Brunilda90/judging26-app/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

const tokenDuration = 12 * time.Hour

// Session is the result of a successful login.
type Session struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	Username   string `json:"username"`
	JudgeID    string `json:"judgeId,omitempty"`
	JudgeRound string `json:"judgeRound,omitempty"`
}

// JudgeAccountInput creates or updates a judge plus its login account.
type JudgeAccountInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	PrelimRoom string `json:"prelimRoom"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password"`
	JudgeRound string `json:"judgeRound"`
}

// Service manages login accounts: admin seeding, judge account lifecycle, and
// authentication.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (*Session, error)
	EnsureDefaultAdmin(ctx context.Context) error

	CreateJudgeAccount(ctx context.Context, input JudgeAccountInput) (*models.Judge, error)
	UpdateJudgeAccount(ctx context.Context, judgeID string, input JudgeAccountInput) error
	DeleteJudgeAccount(ctx context.Context, judgeID string) error
}

// JudgeStore is the slice of the scoring repository the account lifecycle
// depends on. Deleting a judge cascades to that judge's answers and scores.
type JudgeStore interface {
	CreateJudge(ctx context.Context, judge *models.Judge) error
	UpdateJudge(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteJudge(ctx context.Context, id string) error
}

// DefaultService implements Service over the user repository. Judge identity
// records live in scoring; their login accounts live here.
type DefaultService struct {
	Users   repository.UserRepository
	Scoring JudgeStore
	Logger  *zap.Logger
}

func NewService(users repository.UserRepository, scoring JudgeStore, logger *zap.Logger) *DefaultService {
	return &DefaultService{Users: users, Scoring: scoring, Logger: logger}
}

// Authenticate checks the credentials and issues a session token. The error
// does not distinguish an unknown username from a wrong password.
func (s *DefaultService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	account, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(account.ID, account.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{
		Token:      token,
		Role:       account.Role,
		Username:   account.Username,
		JudgeID:    account.JudgeID,
		JudgeRound: account.JudgeRound,
	}, nil
}

// EnsureDefaultAdmin seeds the configured admin account when no admin exists.
// Runs at startup so a fresh database is immediately usable.
func (s *DefaultService) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.Users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     config.AppConfig.DefaultAdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.Users.Create(ctx, admin); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUsername) {
			// Another instance seeded it first.
			return nil
		}
		return err
	}
	s.Logger.Info("seeded default admin account", zap.String("username", admin.Username))
	return nil
}

// CreateJudgeAccount creates the judge record and its login account. If the
// username is taken the judge record is rolled back so no orphan remains.
func (s *DefaultService) CreateJudgeAccount(ctx context.Context, input JudgeAccountInput) (*models.Judge, error) {
	if strings.TrimSpace(input.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	judge := &models.Judge{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		PrelimRoom: input.PrelimRoom,
	}
	if err := s.Scoring.CreateJudge(ctx, judge); err != nil {
		return nil, err
	}

	account := &models.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
		Role:         models.RoleJudge,
		JudgeID:      judge.ID,
		JudgeRound:   judgeRound(input.JudgeRound),
	}
	if err := s.Users.Create(ctx, account); err != nil {
		if delErr := s.Scoring.DeleteJudge(ctx, judge.ID); delErr != nil {
			s.Logger.Error("failed to roll back judge after account conflict",
				zap.String("judgeId", judge.ID), zap.Error(delErr))
		}
		if errors.Is(err, userRepo.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return judge, nil
}

// UpdateJudgeAccount updates the judge record and its account. A blank
// password leaves the current one in place.
func (s *DefaultService) UpdateJudgeAccount(ctx context.Context, judgeID string, input JudgeAccountInput) error {
	if err := s.Scoring.UpdateJudge(ctx, judgeID, map[string]interface{}{
		"name":        strings.TrimSpace(input.Name),
		"email":       strings.ToLower(strings.TrimSpace(input.Email)),
		"prelim_room": input.PrelimRoom,
	}); err != nil {
		return err
	}

	patch := map[string]interface{}{
		"username":    strings.TrimSpace(input.Username),
		"role":        models.RoleJudge,
		"judge_round": judgeRound(input.JudgeRound),
	}
	if strings.TrimSpace(input.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		patch["password_hash"] = string(hash)
	}
	if err := s.Users.UpsertByJudgeID(ctx, judgeID, patch); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// DeleteJudgeAccount removes the judge record, its scores and answers, and
// its login account.
func (s *DefaultService) DeleteJudgeAccount(ctx context.Context, judgeID string) error {
	if err := s.Scoring.DeleteJudge(ctx, judgeID); err != nil {
		return err
	}
	return s.Users.DeleteByJudgeID(ctx, judgeID)
}

func judgeRound(round string) string {
	if round == models.RoundFinals {
		return models.RoundFinals
	}
	return models.RoundPrelims
}
