package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/database/repository"
	"github.com/Brunilda90/judging26-app/models"
)

// Validation and conflict errors surfaced to the registration form.
var (
	ErrTeamNameTaken = errors.New("a team with this name is already registered")
	ErrEmailTaken    = errors.New("this contact email is already registered")
	ErrNotFound      = errors.New("registration not found")
)

// RegisterInput is the public registration form payload.
type RegisterInput struct {
	TeamName     string              `json:"teamName" binding:"required"`
	ProjectName  string              `json:"projectName"`
	Description  string              `json:"description"`
	Members      []models.TeamMember `json:"members"`
	ContactEmail string              `json:"contactEmail" binding:"required"`
}

// Service is the team registration workflow: public sign-up, admin review,
// and the lookups the booking and judge consoles run on.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.TeamRegistration, error)
	Get(ctx context.Context, id string) (*models.TeamRegistration, error)
	List(ctx context.Context, status string) ([]models.TeamRegistration, error)
	LookupByMemberEmail(ctx context.Context, email string) (*models.TeamRegistration, error)

	Approve(ctx context.Context, id, notes string) error
	Reject(ctx context.Context, id, notes string) error
	UpdateDetails(ctx context.Context, id string, input RegisterInput) error

	BookableTeamNames(ctx context.Context) ([]string, error)
	ApprovedTeamNames(ctx context.Context) ([]string, error)
}

// CompetitorCreator is the slice of the scoring service approval depends on.
type CompetitorCreator interface {
	GetOrCreateCompetitor(ctx context.Context, name string) (*models.Competitor, error)
}

// DefaultService implements Service. Scoring is consulted on approval to
// create the leaderboard competitor for the team.
type DefaultService struct {
	Repo    repository.RegistrationRepository
	Scoring CompetitorCreator
	Logger  *zap.Logger
}

func NewService(repo repository.RegistrationRepository, scoringSvc CompetitorCreator, logger *zap.Logger) *DefaultService {
	return &DefaultService{Repo: repo, Scoring: scoringSvc, Logger: logger}
}

func normalizeInput(input *RegisterInput) {
	input.TeamName = strings.TrimSpace(input.TeamName)
	input.ProjectName = strings.TrimSpace(input.ProjectName)
	input.Description = strings.TrimSpace(input.Description)
	input.ContactEmail = strings.ToLower(strings.TrimSpace(input.ContactEmail))
	members := input.Members[:0]
	for _, m := range input.Members {
		m.Name = strings.TrimSpace(m.Name)
		m.Email = strings.ToLower(strings.TrimSpace(m.Email))
		if m.Name == "" && m.Email == "" {
			continue
		}
		members = append(members, m)
	}
	input.Members = members
}

// Register files a new registration in pending status. Team names and contact
// emails are unique across all registrations, rejected ones included.
func (s *DefaultService) Register(ctx context.Context, input RegisterInput) (*models.TeamRegistration, error) {
	normalizeInput(&input)
	if input.TeamName == "" {
		return nil, fmt.Errorf("team name is required")
	}
	if input.ContactEmail == "" {
		return nil, fmt.Errorf("contact email is required")
	}

	nameTaken, err := s.Repo.TeamNameExists(ctx, input.TeamName)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		return nil, ErrTeamNameTaken
	}
	emailTaken, err := s.Repo.ContactEmailExists(ctx, input.ContactEmail)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	reg := &models.TeamRegistration{
		TeamName:     input.TeamName,
		ProjectName:  input.ProjectName,
		Description:  input.Description,
		Members:      input.Members,
		ContactEmail: input.ContactEmail,
		Status:       models.RegistrationPending,
	}
	if err := s.Repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	s.Logger.Info("team registered",
		zap.String("team", reg.TeamName), zap.String("id", reg.ID))
	return reg, nil
}

func (s *DefaultService) Get(ctx context.Context, id string) (*models.TeamRegistration, error) {
	reg, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, ErrNotFound
	}
	return reg, nil
}

func (s *DefaultService) List(ctx context.Context, status string) ([]models.TeamRegistration, error) {
	return s.Repo.List(ctx, status)
}

// LookupByMemberEmail finds the registration listing the email as a member or
// contact, case-insensitively. Teams identify themselves by email on the
// booking pages.
func (s *DefaultService) LookupByMemberEmail(ctx context.Context, email string) (*models.TeamRegistration, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return s.Repo.GetByMemberEmail(ctx, email)
}

// Approve marks the registration approved and creates its leaderboard
// competitor, linking the competitor id back onto the record.
func (s *DefaultService) Approve(ctx context.Context, id, notes string) error {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	competitor, err := s.Scoring.GetOrCreateCompetitor(ctx, reg.TeamName)
	if err != nil {
		return fmt.Errorf("failed to create competitor for %q: %w", reg.TeamName, err)
	}

	now := time.Now().UTC()
	return s.Repo.Update(ctx, id, map[string]interface{}{
		"status":        models.RegistrationApproved,
		"admin_notes":   notes,
		"competitor_id": competitor.ID,
		"reviewed_at":   now,
	})
}

func (s *DefaultService) Reject(ctx context.Context, id, notes string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.Repo.Update(ctx, id, map[string]interface{}{
		"status":      models.RegistrationRejected,
		"admin_notes": notes,
		"reviewed_at": now,
	})
}

// UpdateDetails edits a registration's fields without touching its status.
// The team name stays unique across the directory.
func (s *DefaultService) UpdateDetails(ctx context.Context, id string, input RegisterInput) error {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	normalizeInput(&input)
	if input.TeamName == "" {
		return fmt.Errorf("team name is required")
	}
	if input.TeamName != reg.TeamName {
		taken, err := s.Repo.TeamNameExists(ctx, input.TeamName)
		if err != nil {
			return err
		}
		if taken {
			return ErrTeamNameTaken
		}
	}
	return s.Repo.Update(ctx, id, map[string]interface{}{
		"team_name":     input.TeamName,
		"project_name":  input.ProjectName,
		"description":   input.Description,
		"members":       input.Members,
		"contact_email": input.ContactEmail,
	})
}

func (s *DefaultService) BookableTeamNames(ctx context.Context) ([]string, error) {
	return s.Repo.BookableTeamNames(ctx)
}

func (s *DefaultService) ApprovedTeamNames(ctx context.Context) ([]string, error) {
	return s.Repo.ApprovedTeamNames(ctx)
}
