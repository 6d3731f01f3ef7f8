package booking

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Brunilda90/judging26-app/database/repository"
	ledgerRepo "github.com/Brunilda90/judging26-app/database/repository/ledger"
	"github.com/Brunilda90/judging26-app/models"
)

// cachedBookings serves the booking list from the availability cache,
// reading through to the store on a miss or a stale payload.
func cachedBookings(ctx context.Context, cache AvailabilityCache, key string, load func(context.Context) ([]models.Booking, error)) ([]models.Booking, error) {
	if payload, ok := cache.Get(ctx, key); ok {
		var bookings []models.Booking
		if err := json.Unmarshal(payload, &bookings); err == nil {
			return bookings, nil
		}
	}
	bookings, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(bookings); err == nil {
		cache.Set(ctx, key, payload)
	}
	return bookings, nil
}

func occupancy(bookings []models.Booking) map[models.SlotKey]string {
	grid := make(map[models.SlotKey]string, len(bookings))
	for _, b := range bookings {
		grid[models.SlotKey{SlotLabel: b.SlotLabel, Resource: b.Resource}] = b.TeamName
	}
	return grid
}

// adminUpdateSession moves a mentor or robot booking to a new (resource, slot)
// pair. Admin overrides bypass the per-team cap, not occupancy: the
// destination must be free of any other booking.
func adminUpdateSession(
	ctx context.Context,
	repo repository.LedgerRepository,
	bookingID, resource, slot string,
	invalidate func(context.Context),
	conflict func(occupant *models.Booking) error,
) error {
	occupant, err := repo.FindOccupant(ctx, slot, resource, bookingID)
	if err != nil {
		return err
	}
	if occupant != nil {
		return conflict(occupant)
	}
	if err := repo.UpdateSlot(ctx, bookingID, slot, resource); err != nil {
		switch {
		case errors.Is(err, ledgerRepo.ErrDuplicate):
			return conflict(nil)
		case errors.Is(err, ledgerRepo.ErrNotFound):
			return newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return err
	}
	invalidate(ctx)
	return nil
}

func adminDeleteSession(
	ctx context.Context,
	repo repository.LedgerRepository,
	bookingID string,
	invalidate func(context.Context),
) error {
	if err := repo.DeleteByID(ctx, bookingID); err != nil {
		if errors.Is(err, ledgerRepo.ErrNotFound) {
			return newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return err
	}
	invalidate(ctx)
	return nil
}
