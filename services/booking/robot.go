package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/config"
	"github.com/Brunilda90/judging26-app/database/repository"
	ledgerRepo "github.com/Brunilda90/judging26-app/database/repository/ledger"
	"github.com/Brunilda90/judging26-app/models"
)

// DefaultRobotService implements SessionService over the robot ledger. One
// robot lives in each room, so the room code doubles as the robot identifier.
// The booking space is disjoint from prelim rooms even where codes overlap.
type DefaultRobotService struct {
	Repo     repository.LedgerRepository
	Schedule config.EventSchedule
	Cache    AvailabilityCache
	Logger   *zap.Logger
}

func (s *DefaultRobotService) invalidate(ctx context.Context) {
	s.Cache.Invalidate(ctx, RobotAvailabilityKey)
}

// Book reserves the robot room at a slot.
func (s *DefaultRobotService) Book(ctx context.Context, team, room, slot string) (*models.Booking, error) {
	count, err := s.Repo.CountByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.Schedule.MaxRobotBookings) {
		return nil, newError(CodeLimitReached,
			"team has already booked %d robot sessions (the maximum)", s.Schedule.MaxRobotBookings)
	}

	clash, err := s.Repo.GetAt(ctx, team, slot)
	if err != nil {
		return nil, err
	}
	if clash != nil {
		return nil, newError(CodeDuplicateTimeSlot, "team already has a robot session booked at this time slot")
	}

	b := &models.Booking{TeamName: team, SlotLabel: slot, Resource: room}
	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicate) {
			return nil, newError(CodeSlotTaken, "that slot is no longer available for the robot in %s", room)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

// Cancel deletes a booking unconditionally.
func (s *DefaultRobotService) Cancel(ctx context.Context, bookingID string) error {
	if err := s.Repo.DeleteByID(ctx, bookingID); err != nil && !errors.Is(err, ledgerRepo.ErrNotFound) {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultRobotService) AdminUpdate(ctx context.Context, bookingID, room, slot string) error {
	return adminUpdateSession(ctx, s.Repo, bookingID, room, slot, s.invalidate,
		func(occupant *models.Booking) error {
			if occupant == nil {
				return newError(CodeSlotTaken, "slot %q for the robot in %s is already booked", slot, room)
			}
			return newError(CodeSlotTaken, "slot %q for the robot in %s is already booked by %q", slot, room, occupant.TeamName)
		})
}

func (s *DefaultRobotService) AdminDelete(ctx context.Context, bookingID string) error {
	return adminDeleteSession(ctx, s.Repo, bookingID, s.invalidate)
}

func (s *DefaultRobotService) BookingsFor(ctx context.Context, team string) ([]models.Booking, error) {
	return s.Repo.ListByTeam(ctx, team)
}

func (s *DefaultRobotService) Bookings(ctx context.Context) ([]models.Booking, error) {
	return cachedBookings(ctx, s.Cache, RobotAvailabilityKey, s.Repo.List)
}

func (s *DefaultRobotService) OccupancyMap(ctx context.Context) (map[models.SlotKey]string, error) {
	bookings, err := s.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	return occupancy(bookings), nil
}
