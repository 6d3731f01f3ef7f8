// File: database/repository/registration/interface.go
package registrationRepo

import (
	"context"

	"github.com/Brunilda90/judging26-app/database"
	"github.com/Brunilda90/judging26-app/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the team directory: registration records keyed by team name
// and member email. The booking services consume its bookable projection and
// trust team names it has vouched for.
type Repository interface {
	EnsureIndexes(ctx context.Context) error

	Create(ctx context.Context, reg *models.TeamRegistration) error
	GetByID(ctx context.Context, id string) (*models.TeamRegistration, error)
	List(ctx context.Context, status string) ([]models.TeamRegistration, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error

	TeamNameExists(ctx context.Context, teamName string) (bool, error)
	ContactEmailExists(ctx context.Context, email string) (bool, error)
	GetByMemberEmail(ctx context.Context, email string) (*models.TeamRegistration, error)
	GetBookableByName(ctx context.Context, teamName string) (*models.TeamRegistration, error)

	ApprovedTeamNames(ctx context.Context) ([]string, error)
	BookableTeamNames(ctx context.Context) ([]string, error)
}

type mongoRegistrationRepo struct {
	coll *mongo.Collection
}

// NewMongoRegistrationRepo constructs a MongoDB-backed team directory.
func NewMongoRegistrationRepo() Repository {
	return &mongoRegistrationRepo{
		coll: database.DB().Collection("team_registrations"),
	}
}
