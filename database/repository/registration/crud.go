// File: database/repository/registration/crud.go
package registrationRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Brunilda90/judging26-app/models"
)

func (r *mongoRegistrationRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "team_name", Value: 1}},
			Options: options.Index().SetName("team_name_idx"),
		},
		{
			Keys:    bson.D{{Key: "contact_email", Value: 1}},
			Options: options.Index().SetName("contact_email_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create registration indexes: %w", err)
	}
	return nil
}

func (r *mongoRegistrationRepo) Create(ctx context.Context, reg *models.TeamRegistration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, reg)
	return err
}

func (r *mongoRegistrationRepo) GetByID(ctx context.Context, id string) (*models.TeamRegistration, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoRegistrationRepo) List(ctx context.Context, status string) ([]models.TeamRegistration, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter, bson.D{{Key: "created_at", Value: 1}})
}

func (r *mongoRegistrationRepo) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
