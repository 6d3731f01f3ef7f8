// File: database/repository/history/history.go
package historyRepo

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

// Repository is the append-only audit log for prelim booking mutations.
// Entries are never updated or deleted.
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Append(ctx context.Context, event models.BookingEvent) error
	List(ctx context.Context) ([]models.BookingEvent, error)
	ListByTeam(ctx context.Context, team string) ([]models.BookingEvent, error)
}

type mongoHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepo constructs the MongoDB-backed audit log.
func NewMongoHistoryRepo() Repository {
	return &mongoHistoryRepo{
		coll: database.DB().Collection("prelim_booking_history"),
	}
}

func (r *mongoHistoryRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("timestamp_idx"),
		},
		{
			Keys:    bson.D{{Key: "team_name", Value: 1}},
			Options: options.Index().SetName("team_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking history indexes: %w", err)
	}
	return nil
}

func (r *mongoHistoryRepo) Append(ctx context.Context, event models.BookingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, event)
	return err
}

func (r *mongoHistoryRepo) list(ctx context.Context, filter bson.M) ([]models.BookingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Newest first.
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.BookingEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *mongoHistoryRepo) List(ctx context.Context) ([]models.BookingEvent, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoHistoryRepo) ListByTeam(ctx context.Context, team string) ([]models.BookingEvent, error) {
	return r.list(ctx, bson.M{"team_name": team})
}
