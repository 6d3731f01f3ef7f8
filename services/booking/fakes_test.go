package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	ledgerRepo "github.com/Brunilda90/judging26-app/database/repository/ledger"
	"github.com/Brunilda90/judging26-app/models"
)

// fakeLedger is an in-memory ledger that enforces the same uniqueness rules
// as the MongoDB indexes for its profile.
type fakeLedger struct {
	profile ledgerRepo.Profile

	mu      sync.Mutex
	seq     int
	entries map[string]models.Booking
}

func newFakeLedger(profile ledgerRepo.Profile) *fakeLedger {
	return &fakeLedger{profile: profile, entries: make(map[string]models.Booking)}
}

func (f *fakeLedger) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeLedger) violates(b models.Booking, excludeID string) bool {
	for id, e := range f.entries {
		if id == excludeID {
			continue
		}
		if e.SlotLabel == b.SlotLabel && e.Resource == b.Resource {
			return true
		}
		if f.profile.TeamUnique && e.TeamName == b.TeamName {
			return true
		}
		if f.profile.TeamSlotUnique && e.TeamName == b.TeamName && e.SlotLabel == b.SlotLabel {
			return true
		}
	}
	return false
}

func (f *fakeLedger) Insert(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.violates(*b, "") {
		return ledgerRepo.ErrDuplicate
	}
	f.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", f.seq)
	}
	if b.BookedAt.IsZero() {
		b.BookedAt = time.Date(2026, 3, 6, 12, 0, 0, f.seq, time.UTC)
	}
	f.entries[b.ID] = *b
	return nil
}

func (f *fakeLedger) sorted(keep func(models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, e := range f.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookedAt.Before(out[j].BookedAt) })
	return out
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeLedger) GetByTeam(ctx context.Context, team string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.TeamName == team {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ListByTeam(ctx context.Context, team string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(b models.Booking) bool { return b.TeamName == team }), nil
}

func (f *fakeLedger) CountByTeam(ctx context.Context, team string) (int64, error) {
	list, _ := f.ListByTeam(ctx, team)
	return int64(len(list)), nil
}

func (f *fakeLedger) GetAt(ctx context.Context, team, slot string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.TeamName == team && e.SlotLabel == slot {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) FindOccupant(ctx context.Context, slot, resource, excludeID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.entries {
		if id == excludeID {
			continue
		}
		if e.SlotLabel == slot && e.Resource == resource {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ResourcesBookedAt(ctx context.Context, slot string, resources []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(resources))
	for _, r := range resources {
		wanted[r] = true
	}
	booked := make(map[string]bool)
	for _, e := range f.entries {
		if e.SlotLabel == slot && wanted[e.Resource] {
			booked[e.Resource] = true
		}
	}
	return booked, nil
}

func (f *fakeLedger) List(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(models.Booking) bool { return true }), nil
}

func (f *fakeLedger) ListByResource(ctx context.Context, resource string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(b models.Booking) bool { return b.Resource == resource }), nil
}

func (f *fakeLedger) UpdateSlot(ctx context.Context, id, slot, resource string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return ledgerRepo.ErrNotFound
	}
	e.SlotLabel = slot
	e.Resource = resource
	if f.violates(e, id) {
		return ledgerRepo.ErrDuplicate
	}
	f.entries[id] = e
	return nil
}

func (f *fakeLedger) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return ledgerRepo.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeLedger) DeleteByTeam(ctx context.Context, team string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.entries {
		if e.TeamName == team {
			delete(f.entries, id)
		}
	}
	return nil
}

// fakeHistory records appended audit events in order.
type fakeHistory struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (f *fakeHistory) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeHistory) Append(ctx context.Context, event models.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeHistory) List(ctx context.Context) ([]models.BookingEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.BookingEvent, len(f.events))
	for i, e := range f.events {
		out[len(f.events)-1-i] = e
	}
	return out, nil
}

func (f *fakeHistory) ListByTeam(ctx context.Context, team string) ([]models.BookingEvent, error) {
	all, _ := f.List(ctx)
	var out []models.BookingEvent
	for _, e := range all {
		if e.TeamName == team {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistory) last() *models.BookingEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return nil
	}
	e := f.events[len(f.events)-1]
	return &e
}

// fakeRegistry serves registrations by team name; only the bookable lookup is
// exercised by the booking services.
type fakeRegistry struct {
	teams map[string]*models.TeamRegistration
}

func (f *fakeRegistry) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeRegistry) Create(ctx context.Context, reg *models.TeamRegistration) error { return nil }

func (f *fakeRegistry) GetByID(ctx context.Context, id string) (*models.TeamRegistration, error) {
	return nil, nil
}

func (f *fakeRegistry) List(ctx context.Context, status string) ([]models.TeamRegistration, error) {
	return nil, nil
}

func (f *fakeRegistry) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return nil
}

func (f *fakeRegistry) TeamNameExists(ctx context.Context, teamName string) (bool, error) {
	return f.teams[teamName] != nil, nil
}

func (f *fakeRegistry) ContactEmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeRegistry) GetByMemberEmail(ctx context.Context, email string) (*models.TeamRegistration, error) {
	return nil, nil
}

func (f *fakeRegistry) GetBookableByName(ctx context.Context, teamName string) (*models.TeamRegistration, error) {
	return f.teams[teamName], nil
}

func (f *fakeRegistry) ApprovedTeamNames(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeRegistry) BookableTeamNames(ctx context.Context) ([]string, error) { return nil, nil }
