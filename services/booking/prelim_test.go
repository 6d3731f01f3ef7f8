package booking

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/database/repository"
	"github.com/Brunilda90/judging26-app/models"
)

func newPrelimService() (*DefaultPrelimService, *fakeLedger, *fakeHistory) {
	ledger := newFakeLedger(repository.PrelimLedger)
	audit := &fakeHistory{}
	svc := &DefaultPrelimService{
		Repo:     ledger,
		Audit:    audit,
		Registry: &fakeRegistry{teams: map[string]*models.TeamRegistration{}},
		Cache:    NoopCache{},
		Logger:   zap.NewNop(),
	}
	return svc, ledger, audit
}

func TestPrelimCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, audit := newPrelimService()

	b, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID == "" {
		t.Error("expected booking id to be assigned")
	}
	event := audit.last()
	if event == nil || event.Action != models.ActionBooked {
		t.Errorf("expected a %q audit event, got %+v", models.ActionBooked, event)
	}
}

func TestPrelimCreateConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPrelimService()

	if _, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another team aiming at the same (slot, room) loses.
	_, err := svc.Create(ctx, "Team Beta", "2:00 PM – 2:10 PM", "N200")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s, got %v", CodeSlotTaken, err)
	}

	// Same slot in a different room is a different appointment.
	if _, err := svc.Create(ctx, "Team Beta", "2:00 PM – 2:10 PM", "N217"); err != nil {
		t.Errorf("Create in other room: %v", err)
	}

	// A team with a booking cannot create a second one.
	_, err = svc.Create(ctx, "Team Alpha", "2:10 PM – 2:20 PM", "N200")
	if ErrCode(err) != CodeAlreadyBooked {
		t.Errorf("expected %s, got %v", CodeAlreadyBooked, err)
	}
}

func TestPrelimSwitchFreesOldSlot(t *testing.T) {
	ctx := context.Background()
	svc, _, audit := newPrelimService()

	if _, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Switch(ctx, "Team Alpha", "2:10 PM – 2:20 PM", "N217"); err != nil {
		t.Fatalf("Switch: %v", err)
	}

	event := audit.last()
	if event.Action != models.ActionSwitched {
		t.Fatalf("expected %q event, got %q", models.ActionSwitched, event.Action)
	}
	if event.PreviousSlot != "2:00 PM – 2:10 PM" || event.PreviousRoom != "N200" {
		t.Errorf("switch event missing previous position: %+v", event)
	}

	// The vacated slot is immediately bookable.
	if _, err := svc.Create(ctx, "Team Beta", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Errorf("vacated slot should be free: %v", err)
	}
}

func TestPrelimSwitchToOwnSlot(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPrelimService()

	if _, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Re-selecting the held slot must not conflict with itself.
	if _, err := svc.Switch(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Errorf("switch to own slot: %v", err)
	}
}

func TestPrelimSwitchConflictRestoresBooking(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPrelimService()

	if _, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Team Beta", "2:10 PM – 2:20 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Switch(ctx, "Team Alpha", "2:10 PM – 2:20 PM", "N200")
	if ErrCode(err) != CodeSlotTaken {
		t.Fatalf("expected %s, got %v", CodeSlotTaken, err)
	}

	b, err := svc.BookingFor(ctx, "Team Alpha")
	if err != nil {
		t.Fatalf("BookingFor: %v", err)
	}
	if b == nil || b.SlotLabel != "2:00 PM – 2:10 PM" || b.Resource != "N200" {
		t.Errorf("expected original booking restored, got %+v", b)
	}
}

func TestPrelimAdminUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, audit := newPrelimService()

	alpha, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Team Beta", "2:10 PM – 2:20 PM", "N200"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.AdminUpdate(ctx, alpha.ID, "2:10 PM – 2:20 PM", "N200")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s moving onto an occupied slot, got %v", CodeSlotTaken, err)
	}

	if err := svc.AdminUpdate(ctx, alpha.ID, "2:20 PM – 2:30 PM", "N217"); err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	event := audit.last()
	if event.Action != models.ActionAdminUpdated || event.PreviousSlot != "2:00 PM – 2:10 PM" {
		t.Errorf("unexpected audit event: %+v", event)
	}

	err = svc.AdminUpdate(ctx, "missing-id", "2:30 PM – 2:40 PM", "N200")
	if ErrCode(err) != CodeNotFound {
		t.Errorf("expected %s for unknown booking, got %v", CodeNotFound, err)
	}
}

func TestPrelimAdminDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, audit := newPrelimService()

	b, err := svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.AdminDelete(ctx, b.ID); err != nil {
		t.Fatalf("AdminDelete: %v", err)
	}
	if event := audit.last(); event.Action != models.ActionAdminDeleted {
		t.Errorf("expected %q event, got %q", models.ActionAdminDeleted, event.Action)
	}
	if got, _ := svc.BookingFor(ctx, "Team Alpha"); got != nil {
		t.Errorf("booking should be gone, got %+v", got)
	}

	err = svc.AdminDelete(ctx, b.ID)
	if ErrCode(err) != CodeNotFound {
		t.Errorf("expected %s on second delete, got %v", CodeNotFound, err)
	}
}

func TestPrelimOccupancyAndSlotByTeam(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPrelimService()

	svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200")
	svc.Create(ctx, "Team Beta", "2:00 PM – 2:10 PM", "N217")

	grid, err := svc.OccupancyMap(ctx)
	if err != nil {
		t.Fatalf("OccupancyMap: %v", err)
	}
	if grid[models.SlotKey{SlotLabel: "2:00 PM – 2:10 PM", Resource: "N200"}] != "Team Alpha" {
		t.Errorf("unexpected occupancy grid: %v", grid)
	}

	slots, err := svc.SlotByTeam(ctx)
	if err != nil {
		t.Fatalf("SlotByTeam: %v", err)
	}
	if slots["Team Beta"] != "2:00 PM – 2:10 PM" {
		t.Errorf("unexpected slot map: %v", slots)
	}
}

func TestPrelimTeamsInRoom(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPrelimService()
	svc.Registry = &fakeRegistry{teams: map[string]*models.TeamRegistration{
		"Team Alpha": {
			TeamName:    "Team Alpha",
			ProjectName: "Line Follower",
			Members:     []models.TeamMember{{Name: "Ada"}, {Name: "Grace"}},
		},
	}}

	svc.Create(ctx, "Team Alpha", "2:00 PM – 2:10 PM", "N200")
	svc.Create(ctx, "Team Beta", "2:10 PM – 2:20 PM", "N200")
	svc.Create(ctx, "Team Gamma", "2:00 PM – 2:10 PM", "N217")

	teams, err := svc.TeamsInRoom(ctx, "N200")
	if err != nil {
		t.Fatalf("TeamsInRoom: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams in N200, got %d", len(teams))
	}
	if teams[0].TeamName != "Team Alpha" || teams[0].ProjectName != "Line Follower" || len(teams[0].Members) != 2 {
		t.Errorf("registration join missing: %+v", teams[0])
	}
	// Team Beta has no registration record; the row still lists the booking.
	if teams[1].TeamName != "Team Beta" || teams[1].ProjectName != "" {
		t.Errorf("unexpected row for unregistered team: %+v", teams[1])
	}
}
