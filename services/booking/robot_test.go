package booking

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/database/repository"
	"github.com/Brunilda90/judging26-app/models"
)

func newRobotService() (*DefaultRobotService, *fakeLedger) {
	ledger := newFakeLedger(repository.RobotLedger)
	svc := &DefaultRobotService{
		Repo:     ledger,
		Schedule: testSchedule(),
		Cache:    NoopCache{},
		Logger:   zap.NewNop(),
	}
	return svc, ledger
}

func TestRobotBookConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRobotService()

	if _, err := svc.Book(ctx, "Team Alpha", "N200", "Fri 6:20 PM"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	_, err := svc.Book(ctx, "Team Beta", "N200", "Fri 6:20 PM")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s, got %v", CodeSlotTaken, err)
	}

	// Same team, same slot, other room: one robot session at a time.
	_, err = svc.Book(ctx, "Team Alpha", "N217", "Fri 6:20 PM")
	if ErrCode(err) != CodeDuplicateTimeSlot {
		t.Errorf("expected %s, got %v", CodeDuplicateTimeSlot, err)
	}

	// Other room at another slot is fine.
	if _, err := svc.Book(ctx, "Team Alpha", "N217", "Fri 6:40 PM"); err != nil {
		t.Errorf("Book other slot: %v", err)
	}
}

func TestRobotBookCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRobotService()

	svc.Book(ctx, "Team Alpha", "N200", "Fri 6:20 PM")
	svc.Book(ctx, "Team Alpha", "N200", "Fri 6:40 PM")

	_, err := svc.Book(ctx, "Team Alpha", "N217", "Sat 10:00 AM")
	if ErrCode(err) != CodeLimitReached {
		t.Errorf("expected %s at the cap, got %v", CodeLimitReached, err)
	}
}

func TestRobotCancelFreesCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRobotService()

	b, _ := svc.Book(ctx, "Team Alpha", "N200", "Fri 6:20 PM")
	svc.Book(ctx, "Team Alpha", "N200", "Fri 6:40 PM")

	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Errorf("second Cancel should be a no-op, got %v", err)
	}
	if _, err := svc.Book(ctx, "Team Alpha", "N217", "Sat 10:00 AM"); err != nil {
		t.Errorf("cap should have a free seat after cancel: %v", err)
	}
}

func TestRobotAdminUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRobotService()

	alpha, _ := svc.Book(ctx, "Team Alpha", "N200", "Fri 6:20 PM")
	svc.Book(ctx, "Team Beta", "N217", "Fri 6:20 PM")

	err := svc.AdminUpdate(ctx, alpha.ID, "N217", "Fri 6:20 PM")
	if ErrCode(err) != CodeSlotTaken {
		t.Errorf("expected %s, got %v", CodeSlotTaken, err)
	}
	if err := svc.AdminUpdate(ctx, alpha.ID, "N217", "Fri 6:40 PM"); err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}

	if err := svc.AdminDelete(ctx, alpha.ID); err != nil {
		t.Fatalf("AdminDelete: %v", err)
	}
	err = svc.AdminDelete(ctx, alpha.ID)
	if ErrCode(err) != CodeNotFound {
		t.Errorf("expected %s on second delete, got %v", CodeNotFound, err)
	}
}

func TestRobotOccupancyMap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRobotService()

	svc.Book(ctx, "Team Alpha", "N200", "Fri 6:20 PM")
	svc.Book(ctx, "Team Beta", "N217", "Fri 6:20 PM")

	grid, err := svc.OccupancyMap(ctx)
	if err != nil {
		t.Fatalf("OccupancyMap: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 occupied cells, got %d", len(grid))
	}
	if grid[models.SlotKey{SlotLabel: "Fri 6:20 PM", Resource: "N217"}] != "Team Beta" {
		t.Errorf("unexpected grid: %v", grid)
	}
}
