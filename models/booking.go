package models

import "time"

// Booking is one entry in a slot-allocation ledger: a team occupying a
// (slot, resource) pair. Resource is a room code for prelim and robot
// bookings, or a mentor name for mentor bookings; the ledger repository maps
// it onto the collection's field name.
type Booking struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"teamName"`
	SlotLabel string    `json:"slotLabel"`
	Resource  string    `json:"resource"`
	BookedAt  time.Time `json:"bookedAt"`
}

// Audit-log actions recorded for prelim booking mutations.
const (
	ActionBooked       = "booked"
	ActionSwitched     = "switched"
	ActionAdminUpdated = "admin_updated"
	ActionAdminDeleted = "admin_deleted"
)

// BookingEvent is an append-only audit record of a prelim booking mutation.
// Previous slot/room are only set for switch and admin-update actions.
type BookingEvent struct {
	ID           string    `json:"id" bson:"id"`
	TeamName     string    `json:"teamName" bson:"team_name"`
	SlotLabel    string    `json:"slotLabel" bson:"slot_label"`
	Room         string    `json:"room" bson:"room"`
	Action       string    `json:"action" bson:"action"`
	PreviousSlot string    `json:"previousSlot,omitempty" bson:"previous_slot,omitempty"`
	PreviousRoom string    `json:"previousRoom,omitempty" bson:"previous_room,omitempty"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}

// SlotKey identifies one cell of an occupancy grid.
type SlotKey struct {
	SlotLabel string
	Resource  string
}

// RoomTeam is a row of the per-room judge console: a booked team joined with
// its registration details.
type RoomTeam struct {
	TeamName    string       `json:"teamName"`
	SlotLabel   string       `json:"slotLabel"`
	Members     []TeamMember `json:"members"`
	ProjectName string       `json:"projectName"`
}
