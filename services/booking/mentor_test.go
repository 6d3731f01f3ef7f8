package booking

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/database/repository"
)

func testSchedule() config.EventSchedule {
	return config.EventSchedule{
		PrelimRooms: []string{"N200", "N217"},
		MentorNames: []string{"Mentor 1", "Mentor 2", "Mentor 3"},
		MentorRoomMap: map[string]string{
			"Mentor 1": "N200",
			"Mentor 2": "N200",
			"Mentor 3": "N217",
		},
		RobotRooms:        []string{"N200", "N217"},
		FridaySlots:       []string{"Fri 6:20 PM", "Fri 6:40 PM"},
		SaturdaySlots:     []string{"Sat 10:00 AM"},
		MaxMentorBookings: 2,
		MaxRobotBookings:  2,
	}
}

func newMentorService() (*DefaultMentorService, *fakeLedger) {
	ledger := newFakeLedger(repository.MentorLedger)
	svc := &DefaultMentorService{
		Repo:     ledger,
		Schedule: testSchedule(),
		Cache:    NoopCache{},
		Logger:   zap.NewNop(),
	}
	return svc, ledger
}

func TestMentorBookCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	if _, err := svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:20 PM"); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if _, err := svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:40 PM"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	_, err := svc.Book(ctx, "Team Alpha", "Mentor 2", "Sat 10:00 AM")
	if ErrCode(err) != CodeLimitReached {
		t.Errorf("expected %s at the cap, got %v", CodeLimitReached, err)
	}
}

func TestMentorBookSlotTaken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	if _, err := svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:20 PM"); err != nil {
		t.Fatalf("Book: %v", err)
	}
	_, err := svc.Book(ctx, "Team Beta", "Mentor 1", "Fri 6:20 PM")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s, got %v", CodeSlotTaken, err)
	}
	// The same mentor at another slot is fine.
	if _, err := svc.Book(ctx, "Team Beta", "Mentor 1", "Fri 6:40 PM"); err != nil {
		t.Errorf("Book other slot: %v", err)
	}
}

func TestMentorBookByRoomFirstFit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	// N200 stations Mentor 1 then Mentor 2; assignment walks that order.
	b1, err := svc.BookByRoom(ctx, "Team Alpha", "N200", "Fri 6:20 PM")
	if err != nil {
		t.Fatalf("BookByRoom: %v", err)
	}
	if b1.Resource != "Mentor 1" {
		t.Errorf("expected Mentor 1 first, got %s", b1.Resource)
	}

	b2, err := svc.BookByRoom(ctx, "Team Beta", "N200", "Fri 6:20 PM")
	if err != nil {
		t.Fatalf("BookByRoom: %v", err)
	}
	if b2.Resource != "Mentor 2" {
		t.Errorf("expected Mentor 2 second, got %s", b2.Resource)
	}

	_, err = svc.BookByRoom(ctx, "Team Gamma", "N200", "Fri 6:20 PM")
	if ErrCode(err) != CodeRoomFull {
		t.Errorf("expected %s once both mentors are taken, got %v", CodeRoomFull, err)
	}
}

func TestMentorBookByRoomDuplicateTimeSlot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	if _, err := svc.BookByRoom(ctx, "Team Alpha", "N200", "Fri 6:20 PM"); err != nil {
		t.Fatalf("BookByRoom: %v", err)
	}
	// Same team, same slot, different room: still two mentors at once.
	_, err := svc.BookByRoom(ctx, "Team Alpha", "N217", "Fri 6:20 PM")
	if ErrCode(err) != CodeDuplicateTimeSlot {
		t.Errorf("expected %s, got %v", CodeDuplicateTimeSlot, err)
	}
}

func TestMentorBookByRoomUnknownRoom(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	_, err := svc.BookByRoom(ctx, "Team Alpha", "B12", "Fri 6:20 PM")
	if ErrCode(err) != CodeRoomFull {
		t.Errorf("expected %s for a room with no mentors, got %v", CodeRoomFull, err)
	}
}

func TestMentorCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	b, err := svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:20 PM")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Errorf("second Cancel should be a no-op, got %v", err)
	}
	// The freed slot is bookable again, and the cap counter went down.
	if _, err := svc.Book(ctx, "Team Beta", "Mentor 1", "Fri 6:20 PM"); err != nil {
		t.Errorf("freed slot should be bookable: %v", err)
	}
}

func TestMentorAdminUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	alpha, _ := svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:20 PM")
	svc.Book(ctx, "Team Beta", "Mentor 2", "Fri 6:20 PM")

	err := svc.AdminUpdate(ctx, alpha.ID, "Mentor 2", "Fri 6:20 PM")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s moving onto an occupied pair, got %v", CodeSlotTaken, err)
	}
	if err := svc.AdminUpdate(ctx, alpha.ID, "Mentor 3", "Sat 10:00 AM"); err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	moved, _ := svc.BookingsFor(ctx, "Team Alpha")
	if len(moved) != 1 || moved[0].Resource != "Mentor 3" || moved[0].SlotLabel != "Sat 10:00 AM" {
		t.Errorf("booking not moved: %+v", moved)
	}

	err = svc.AdminUpdate(ctx, "missing-id", "Mentor 1", "Fri 6:40 PM")
	if ErrCode(err) != CodeNotFound {
		t.Errorf("expected %s, got %v", CodeNotFound, err)
	}
}

func TestMentorRoomsFullAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMentorService()

	svc.Book(ctx, "Team Alpha", "Mentor 1", "Fri 6:20 PM")
	svc.Book(ctx, "Team Beta", "Mentor 2", "Fri 6:20 PM")

	full, err := svc.RoomsFullAt(ctx, "Fri 6:20 PM")
	if err != nil {
		t.Fatalf("RoomsFullAt: %v", err)
	}
	if !full["N200"] {
		t.Error("N200 should be full with both mentors booked")
	}
	if full["N217"] {
		t.Error("N217 should still have Mentor 3 free")
	}

	later, err := svc.RoomsFullAt(ctx, "Fri 6:40 PM")
	if err != nil {
		t.Fatalf("RoomsFullAt: %v", err)
	}
	if later["N200"] || later["N217"] {
		t.Errorf("no bookings at the later slot, got %v", later)
	}
}
