// File: database/repository/user/user.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Brunilda90/judging26-app/database"
	"github.com/Brunilda90/judging26-app/models"
)

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = fmt.Errorf("username already taken")

// Repository manages login accounts (admins and judge accounts).
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByJudgeID(ctx context.Context, judgeID string) (*models.User, error)
	UpsertByJudgeID(ctx context.Context, judgeID string, patch map[string]interface{}) error
	DeleteByJudgeID(ctx context.Context, judgeID string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a MongoDB-backed user repository.
func NewMongoUserRepo() Repository {
	return &mongoUserRepo{coll: database.DB().Collection("users")}
}

func (r *mongoUserRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_username"),
		},
		// Judge accounts link to at most one judge; admin accounts carry no
		// judge_id, so the index is sparse.
		{
			Keys:    bson.D{{Key: "judge_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_judge_id"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *mongoUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepo) GetByJudgeID(ctx context.Context, judgeID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"judge_id": judgeID, "role": models.RoleJudge})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepo) UpsertByJudgeID(ctx context.Context, judgeID string, patch map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"judge_id": judgeID, "role": models.RoleJudge}
	update := bson.M{
		"$set":         patch,
		"$setOnInsert": bson.M{"id": uuid.New().String()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *mongoUserRepo) DeleteByJudgeID(ctx context.Context, judgeID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"judge_id": judgeID})
	return err
}

func (r *mongoUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"role": role})
}
