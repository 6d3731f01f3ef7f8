// File: database/repository/ledger/crud.go
package ledgerRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Brunilda90/judging26-app/models"
)

func (r *mongoLedgerRepo) toDoc(b *models.Booking) bson.M {
	return bson.M{
		"id":                    b.ID,
		"team_name":             b.TeamName,
		"slot_label":            b.SlotLabel,
		r.profile.ResourceField: b.Resource,
		"booked_at":             b.BookedAt,
	}
}

func (r *mongoLedgerRepo) fromDoc(doc bson.M) models.Booking {
	b := models.Booking{}
	if v, ok := doc["id"].(string); ok {
		b.ID = v
	}
	if v, ok := doc["team_name"].(string); ok {
		b.TeamName = v
	}
	if v, ok := doc["slot_label"].(string); ok {
		b.SlotLabel = v
	}
	if v, ok := doc[r.profile.ResourceField].(string); ok {
		b.Resource = v
	}
	switch v := doc["booked_at"].(type) {
	case time.Time:
		b.BookedAt = v
	}
	return b
}

func (r *mongoLedgerRepo) Insert(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.BookedAt.IsZero() {
		b.BookedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, r.toDoc(b)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *mongoLedgerRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bson.M
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b := r.fromDoc(doc)
	return &b, nil
}

func (r *mongoLedgerRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOpts := options.Find()
	if sort != nil {
		findOpts.SetSort(sort)
	}
	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, r.fromDoc(doc))
	}
	return bookings, nil
}

func (r *mongoLedgerRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoLedgerRepo) GetByTeam(ctx context.Context, team string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"team_name": team})
}

func (r *mongoLedgerRepo) GetAt(ctx context.Context, team, slot string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"team_name": team, "slot_label": slot})
}

func (r *mongoLedgerRepo) FindOccupant(ctx context.Context, slot, resource, excludeID string) (*models.Booking, error) {
	filter := bson.M{"slot_label": slot, r.profile.ResourceField: resource}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return r.findOne(ctx, filter)
}

func (r *mongoLedgerRepo) ListByTeam(ctx context.Context, team string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"team_name": team}, bson.D{{Key: "slot_label", Value: 1}})
}

func (r *mongoLedgerRepo) CountByTeam(ctx context.Context, team string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"team_name": team})
}

func (r *mongoLedgerRepo) List(ctx context.Context) ([]models.Booking, error) {
	sort := bson.D{{Key: "slot_label", Value: 1}, {Key: r.profile.ResourceField, Value: 1}}
	return r.find(ctx, bson.M{}, sort)
}

func (r *mongoLedgerRepo) ListByResource(ctx context.Context, resource string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{r.profile.ResourceField: resource}, bson.D{{Key: "slot_label", Value: 1}})
}

func (r *mongoLedgerRepo) ResourcesBookedAt(ctx context.Context, slot string, resources []string) (map[string]bool, error) {
	filter := bson.M{
		"slot_label":            slot,
		r.profile.ResourceField: bson.M{"$in": resources},
	}
	bookings, err := r.find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[b.Resource] = true
	}
	return booked, nil
}

func (r *mongoLedgerRepo) UpdateSlot(ctx context.Context, id, slot, resource string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"slot_label": slot, r.profile.ResourceField: resource}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoLedgerRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoLedgerRepo) DeleteByTeam(ctx context.Context, team string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"team_name": team})
	return err
}
