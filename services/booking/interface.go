package booking

import (
	"context"

	"github.com/Brunilda90/judging26-app/models"
)

// PrelimService allocates the single (slot, room) prelim judging appointment
// each team holds. A team's booking is exclusive: create fails once one
// exists, and changes go through Switch.
type PrelimService interface {
	Create(ctx context.Context, team, slot, room string) (*models.Booking, error)
	Switch(ctx context.Context, team, slot, room string) (*models.Booking, error)
	AdminUpdate(ctx context.Context, bookingID, slot, room string) error
	AdminDelete(ctx context.Context, bookingID string) error

	BookingFor(ctx context.Context, team string) (*models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
	OccupancyMap(ctx context.Context) (map[models.SlotKey]string, error)
	SlotByTeam(ctx context.Context) (map[string]string, error)
	TeamsInRoom(ctx context.Context, room string) ([]models.RoomTeam, error)
	History(ctx context.Context) ([]models.BookingEvent, error)
}

// SessionService allocates capped multi-bookings of (slot, resource) pairs.
// Mentor and robot bookings share these operations; the mentor variant adds
// room-based auto-assignment.
type SessionService interface {
	Book(ctx context.Context, team, resource, slot string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
	AdminUpdate(ctx context.Context, bookingID, resource, slot string) error
	AdminDelete(ctx context.Context, bookingID string) error

	BookingsFor(ctx context.Context, team string) ([]models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
	OccupancyMap(ctx context.Context) (map[models.SlotKey]string, error)
}

// MentorService adds the room-level convenience mode on top of SessionService.
type MentorService interface {
	SessionService

	// BookByRoom assigns any free mentor stationed in the room, first-fit in
	// the room's mentor-list order.
	BookByRoom(ctx context.Context, team, room, slot string) (*models.Booking, error)

	// RoomsFullAt reports, per room, whether every mentor stationed there is
	// occupied at the slot.
	RoomsFullAt(ctx context.Context, slot string) (map[string]bool, error)
}
