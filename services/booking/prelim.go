package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/database/repository"
	ledgerRepo "github.com/Brunilda90/judging26-app/database/repository/ledger"
	"github.com/Brunilda90/judging26-app/models"
)

// DefaultPrelimService implements PrelimService over the prelim ledger.
type DefaultPrelimService struct {
	Repo     repository.LedgerRepository
	Audit    repository.HistoryRepository
	Registry repository.RegistrationRepository
	Cache    AvailabilityCache
	Logger   *zap.Logger
}

func (s *DefaultPrelimService) invalidate(ctx context.Context) {
	s.Cache.Invalidate(ctx, PrelimAvailabilityKey)
}

func (s *DefaultPrelimService) audit(ctx context.Context, event models.BookingEvent) {
	if err := s.Audit.Append(ctx, event); err != nil {
		// The booking itself committed; a lost audit entry is logged, not
		// surfaced to the user.
		s.Logger.Error("failed to append booking audit entry",
			zap.String("team", event.TeamName), zap.String("action", event.Action), zap.Error(err))
	}
}

// Create books (slot, room) for a team that holds no booking yet. A team that
// already booked must use Switch.
func (s *DefaultPrelimService) Create(ctx context.Context, team, slot, room string) (*models.Booking, error) {
	existing, err := s.Repo.GetByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(CodeAlreadyBooked, "team %q already has a booking; switch it instead", team)
	}

	b := &models.Booking{TeamName: team, SlotLabel: slot, Resource: room}
	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicate) {
			return nil, newError(CodeSlotTaken, "slot %q in room %s is already taken", slot, room)
		}
		return nil, err
	}

	s.audit(ctx, models.BookingEvent{
		TeamName:  team,
		SlotLabel: slot,
		Room:      room,
		Action:    models.ActionBooked,
	})
	s.invalidate(ctx)
	return b, nil
}

// Switch replaces the team's booking with a new (slot, room) pair. The old
// booking is removed before the insert so that re-booking the team's own slot
// never conflicts with itself; on a lost race the old booking is restored.
func (s *DefaultPrelimService) Switch(ctx context.Context, team, slot, room string) (*models.Booking, error) {
	old, err := s.Repo.GetByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteByTeam(ctx, team); err != nil {
		return nil, err
	}

	b := &models.Booking{TeamName: team, SlotLabel: slot, Resource: room}
	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicate) {
			if old != nil {
				if restoreErr := s.Repo.Insert(ctx, old); restoreErr != nil {
					s.Logger.Error("failed to restore booking after switch conflict",
						zap.String("team", team), zap.Error(restoreErr))
				}
			}
			return nil, newError(CodeSlotTaken, "slot %q in room %s is already taken", slot, room)
		}
		return nil, err
	}

	event := models.BookingEvent{
		TeamName:  team,
		SlotLabel: slot,
		Room:      room,
		Action:    models.ActionSwitched,
	}
	if old != nil {
		event.PreviousSlot = old.SlotLabel
		event.PreviousRoom = old.Resource
	}
	s.audit(ctx, event)
	s.invalidate(ctx)
	return b, nil
}

// AdminUpdate moves any booking to a new (slot, room) pair, bypassing
// per-team rules but not occupancy.
func (s *DefaultPrelimService) AdminUpdate(ctx context.Context, bookingID, slot, room string) error {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if current == nil {
		return newError(CodeNotFound, "booking %s not found", bookingID)
	}

	occupant, err := s.Repo.FindOccupant(ctx, slot, room, bookingID)
	if err != nil {
		return err
	}
	if occupant != nil {
		return newError(CodeSlotTaken, "slot %q in room %s is already booked by %q", slot, room, occupant.TeamName)
	}

	if err := s.Repo.UpdateSlot(ctx, bookingID, slot, room); err != nil {
		switch {
		case errors.Is(err, ledgerRepo.ErrDuplicate):
			return newError(CodeSlotTaken, "slot %q in room %s is already taken", slot, room)
		case errors.Is(err, ledgerRepo.ErrNotFound):
			return newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return err
	}

	s.audit(ctx, models.BookingEvent{
		TeamName:     current.TeamName,
		SlotLabel:    slot,
		Room:         room,
		Action:       models.ActionAdminUpdated,
		PreviousSlot: current.SlotLabel,
		PreviousRoom: current.Resource,
	})
	s.invalidate(ctx)
	return nil
}

// AdminDelete removes a booking entirely.
func (s *DefaultPrelimService) AdminDelete(ctx context.Context, bookingID string) error {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if current == nil {
		return newError(CodeNotFound, "booking %s not found", bookingID)
	}
	if err := s.Repo.DeleteByID(ctx, bookingID); err != nil && !errors.Is(err, ledgerRepo.ErrNotFound) {
		return err
	}

	s.audit(ctx, models.BookingEvent{
		TeamName:  current.TeamName,
		SlotLabel: current.SlotLabel,
		Room:      current.Resource,
		Action:    models.ActionAdminDeleted,
	})
	s.invalidate(ctx)
	return nil
}

func (s *DefaultPrelimService) BookingFor(ctx context.Context, team string) (*models.Booking, error) {
	return s.Repo.GetByTeam(ctx, team)
}

func (s *DefaultPrelimService) Bookings(ctx context.Context) ([]models.Booking, error) {
	return cachedBookings(ctx, s.Cache, PrelimAvailabilityKey, s.Repo.List)
}

func (s *DefaultPrelimService) OccupancyMap(ctx context.Context) (map[models.SlotKey]string, error) {
	bookings, err := s.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	return occupancy(bookings), nil
}

// SlotByTeam returns each booked team's slot label.
func (s *DefaultPrelimService) SlotByTeam(ctx context.Context) (map[string]string, error) {
	bookings, err := s.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	slots := make(map[string]string, len(bookings))
	for _, b := range bookings {
		slots[b.TeamName] = b.SlotLabel
	}
	return slots, nil
}

// TeamsInRoom lists the teams booked into a room, joined with their
// registration details for the judge console.
func (s *DefaultPrelimService) TeamsInRoom(ctx context.Context, room string) ([]models.RoomTeam, error) {
	bookings, err := s.Repo.ListByResource(ctx, room)
	if err != nil {
		return nil, err
	}
	teams := make([]models.RoomTeam, 0, len(bookings))
	for _, b := range bookings {
		row := models.RoomTeam{TeamName: b.TeamName, SlotLabel: b.SlotLabel}
		reg, err := s.Registry.GetBookableByName(ctx, b.TeamName)
		if err != nil {
			return nil, err
		}
		if reg != nil {
			row.Members = reg.Members
			row.ProjectName = reg.ProjectName
		}
		teams = append(teams, row)
	}
	return teams, nil
}

func (s *DefaultPrelimService) History(ctx context.Context) ([]models.BookingEvent, error) {
	return s.Audit.List(ctx)
}
