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

// DefaultMentorService implements MentorService over the mentor ledger. Teams
// may hold up to Schedule.MaxMentorBookings sessions, never two in the same
// slot.
type DefaultMentorService struct {
	Repo     repository.LedgerRepository
	Schedule config.EventSchedule
	Cache    AvailabilityCache
	Logger   *zap.Logger
}

func (s *DefaultMentorService) invalidate(ctx context.Context) {
	s.Cache.Invalidate(ctx, MentorAvailabilityKey)
}

// Book reserves a specific mentor at a specific slot.
func (s *DefaultMentorService) Book(ctx context.Context, team, mentor, slot string) (*models.Booking, error) {
	count, err := s.Repo.CountByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.Schedule.MaxMentorBookings) {
		return nil, newError(CodeLimitReached,
			"team has already booked %d mentor sessions (the maximum)", s.Schedule.MaxMentorBookings)
	}

	b := &models.Booking{TeamName: team, SlotLabel: slot, Resource: mentor}
	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicate) {
			return nil, newError(CodeSlotTaken, "that slot is no longer available for %s", mentor)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

// BookByRoom auto-assigns any free mentor stationed in the room at the slot,
// first-fit in the room's mentor-list order. Picking the first free mentor
// rather than balancing load across mentors is intentional.
func (s *DefaultMentorService) BookByRoom(ctx context.Context, team, room, slot string) (*models.Booking, error) {
	count, err := s.Repo.CountByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.Schedule.MaxMentorBookings) {
		return nil, newError(CodeLimitReached,
			"team has already booked %d mentor sessions (the maximum)", s.Schedule.MaxMentorBookings)
	}

	clash, err := s.Repo.GetAt(ctx, team, slot)
	if err != nil {
		return nil, err
	}
	if clash != nil {
		return nil, newError(CodeDuplicateTimeSlot, "team already has a mentor session booked at this time slot")
	}

	mentors := s.Schedule.MentorsInRoom(room)
	if len(mentors) == 0 {
		return nil, newError(CodeRoomFull, "no mentors are assigned to room %s", room)
	}
	booked, err := s.Repo.ResourcesBookedAt(ctx, slot, mentors)
	if err != nil {
		return nil, err
	}
	var assigned string
	for _, m := range mentors {
		if !booked[m] {
			assigned = m
			break
		}
	}
	if assigned == "" {
		return nil, newError(CodeRoomFull, "room %s is fully booked at that time", room)
	}

	b := &models.Booking{TeamName: team, SlotLabel: slot, Resource: assigned}
	if err := s.Repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ledgerRepo.ErrDuplicate) {
			return nil, newError(CodeSlotTaken, "that slot was just taken; try a different time")
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

// Cancel deletes a booking unconditionally; cancelling an already-removed
// booking is not an error.
func (s *DefaultMentorService) Cancel(ctx context.Context, bookingID string) error {
	if err := s.Repo.DeleteByID(ctx, bookingID); err != nil && !errors.Is(err, ledgerRepo.ErrNotFound) {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultMentorService) AdminUpdate(ctx context.Context, bookingID, mentor, slot string) error {
	return adminUpdateSession(ctx, s.Repo, bookingID, mentor, slot, s.invalidate,
		func(occupant *models.Booking) error {
			if occupant == nil {
				return newError(CodeSlotTaken, "slot %q is already booked with %s", slot, mentor)
			}
			return newError(CodeSlotTaken, "slot %q is already booked with %s by %q", slot, mentor, occupant.TeamName)
		})
}

func (s *DefaultMentorService) AdminDelete(ctx context.Context, bookingID string) error {
	return adminDeleteSession(ctx, s.Repo, bookingID, s.invalidate)
}

func (s *DefaultMentorService) BookingsFor(ctx context.Context, team string) ([]models.Booking, error) {
	return s.Repo.ListByTeam(ctx, team)
}

func (s *DefaultMentorService) Bookings(ctx context.Context) ([]models.Booking, error) {
	return cachedBookings(ctx, s.Cache, MentorAvailabilityKey, s.Repo.List)
}

func (s *DefaultMentorService) OccupancyMap(ctx context.Context) (map[models.SlotKey]string, error) {
	bookings, err := s.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	return occupancy(bookings), nil
}

// RoomsFullAt reports, per room, whether every mentor stationed there is
// occupied at the slot. Rooms with no mentors assigned count as full.
func (s *DefaultMentorService) RoomsFullAt(ctx context.Context, slot string) (map[string]bool, error) {
	booked, err := s.Repo.ResourcesBookedAt(ctx, slot, s.Schedule.MentorNames)
	if err != nil {
		return nil, err
	}
	full := make(map[string]bool)
	for _, room := range s.Schedule.MentorRooms() {
		mentors := s.Schedule.MentorsInRoom(room)
		roomFull := true
		for _, m := range mentors {
			if !booked[m] {
				roomFull = false
				break
			}
		}
		full[room] = roomFull
	}
	return full, nil
}
