// File: database/repository/registration/queries.go
package registrationRepo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Brunilda90/judging26-app/models"
)

// bookableStatuses covers teams allowed to book: pending or approved, never
// rejected.
var bookableStatuses = bson.M{"$in": []string{models.RegistrationPending, models.RegistrationApproved}}

func (r *mongoRegistrationRepo) findOne(ctx context.Context, filter bson.M) (*models.TeamRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reg models.TeamRegistration
	err := r.coll.FindOne(ctx, filter).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *mongoRegistrationRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.TeamRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var regs []models.TeamRegistration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// Uniqueness checks span every registration, rejected ones included, so a
// rejected team cannot re-file under the same name.
func (r *mongoRegistrationRepo) TeamNameExists(ctx context.Context, teamName string) (bool, error) {
	reg, err := r.findOne(ctx, bson.M{"team_name": teamName})
	return reg != nil, err
}

func (r *mongoRegistrationRepo) ContactEmailExists(ctx context.Context, email string) (bool, error) {
	reg, err := r.findOne(ctx, bson.M{"contact_email": email})
	return reg != nil, err
}

func (r *mongoRegistrationRepo) GetByMemberEmail(ctx context.Context, email string) (*models.TeamRegistration, error) {
	// Case-insensitive exact match against any member's email.
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}
	return r.findOne(ctx, bson.M{"members.email": pattern, "status": bookableStatuses})
}

func (r *mongoRegistrationRepo) GetBookableByName(ctx context.Context, teamName string) (*models.TeamRegistration, error) {
	return r.findOne(ctx, bson.M{"team_name": teamName, "status": bookableStatuses})
}

func (r *mongoRegistrationRepo) teamNames(ctx context.Context, filter bson.M) ([]string, error) {
	regs, err := r.find(ctx, filter, bson.D{{Key: "team_name", Value: 1}})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(regs))
	for _, reg := range regs {
		names = append(names, reg.TeamName)
	}
	return names, nil
}

func (r *mongoRegistrationRepo) ApprovedTeamNames(ctx context.Context) ([]string, error) {
	return r.teamNames(ctx, bson.M{"status": models.RegistrationApproved})
}

func (r *mongoRegistrationRepo) BookableTeamNames(ctx context.Context) ([]string, error) {
	return r.teamNames(ctx, bson.M{"status": bookableStatuses})
}
