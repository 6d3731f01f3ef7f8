// File: database/repository/ledger/interface.go
package ledgerRepo

import (
	"context"
	"errors"

	"github.com/Brunilda90/judging26-app/database"
	"github.com/Brunilda90/judging26-app/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned by Insert when a unique index rejects the write.
// Callers translate it into their own conflict error; the losing writer of a
// race gets this, never a partial write.
var ErrDuplicate = errors.New("ledger: duplicate key")

// ErrNotFound is returned when a booking id does not exist.
var ErrNotFound = errors.New("ledger: booking not found")

// Repository is a slot-allocation ledger over one MongoDB collection: entries
// map a (slot, resource) pair to the team occupying it. The same
// implementation backs prelim, mentor and robot bookings; the collection name,
// resource field name and uniqueness profile differ per instance.
type Repository interface {
	EnsureIndexes(ctx context.Context) error

	// Insert adds an entry, assigning its ID, and fails with ErrDuplicate if
	// any unique index rejects it. This is the atomic check-and-insert the
	// whole conflict model rests on.
	Insert(ctx context.Context, b *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByTeam(ctx context.Context, team string) (*models.Booking, error)
	ListByTeam(ctx context.Context, team string) ([]models.Booking, error)
	CountByTeam(ctx context.Context, team string) (int64, error)

	// GetAt returns the team's entry at the given slot, or nil.
	GetAt(ctx context.Context, team, slot string) (*models.Booking, error)

	// FindOccupant returns the entry holding (slot, resource), ignoring the
	// entry with excludeID (pass "" to exclude nothing), or nil when free.
	FindOccupant(ctx context.Context, slot, resource, excludeID string) (*models.Booking, error)

	// ResourcesBookedAt reports which of the given resources are occupied at
	// the slot.
	ResourcesBookedAt(ctx context.Context, slot string, resources []string) (map[string]bool, error)

	List(ctx context.Context) ([]models.Booking, error)
	ListByResource(ctx context.Context, resource string) ([]models.Booking, error)

	UpdateSlot(ctx context.Context, id, slot, resource string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByTeam(ctx context.Context, team string) error
}

// Profile fixes how a ledger instance stores entries and which uniqueness
// rules its indexes enforce.
type Profile struct {
	Collection     string
	ResourceField  string // bson field holding the resource: "room" or "mentor_name"
	TeamUnique     bool   // at most one entry per team (prelim)
	TeamSlotUnique bool   // at most one entry per (team, slot) (mentor, robot)
}

type mongoLedgerRepo struct {
	coll    *mongo.Collection
	profile Profile
}

// NewMongoLedger constructs a MongoDB-backed ledger for the given profile.
func NewMongoLedger(profile Profile) Repository {
	return &mongoLedgerRepo{
		coll:    database.DB().Collection(profile.Collection),
		profile: profile,
	}
}
