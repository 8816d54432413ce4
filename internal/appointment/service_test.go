package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taxdesk/reception-checkin/internal/config"
)

type fakeRepo struct {
	appointments map[string]Appointment
	events       []VisitEvent
	listCalls    int
}

func newFakeRepo(appts ...Appointment) *fakeRepo {
	r := &fakeRepo{appointments: make(map[string]Appointment)}
	for _, a := range appts {
		r.appointments[a.ID] = a
	}
	return r
}

func (r *fakeRepo) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	r.listCalls++
	var out []Appointment
	for _, a := range r.appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	a.Status = to
	r.appointments[id] = a
	return &a, nil
}

func (r *fakeRepo) FindOverdue(ctx context.Context, date, cutoff string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.appointments {
		if a.Status != StatusPending && a.Status != StatusConfirmed {
			continue
		}
		if a.Date < date || (a.Date == date && a.Time < cutoff) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) InsertEvent(ctx context.Context, ev VisitEvent) error {
	r.events = append(r.events, ev)
	return nil
}

type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetRoster(ctx context.Context, date string) ([]byte, error) {
	return c.entries[date], nil
}

func (c *fakeCache) SetRoster(ctx context.Context, date string, payload []byte) error {
	c.sets++
	c.entries[date] = payload
	return nil
}

func (c *fakeCache) InvalidateRoster(ctx context.Context, date string) error {
	delete(c.entries, date)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Env:         "test",
		NoShowGrace: 30 * time.Minute,
	}
}

func TestVerifyVisitorEndToEnd(t *testing.T) {
	repo := newFakeRepo(Appointment{
		ID:           "A1",
		Date:         fixedToday,
		Time:         "09:00",
		Duration:     60,
		CitizenName:  "Jean Dupont",
		CitizenPhone: "0711111111",
		Service:      "Fiscalité",
		Agent:        "Marie",
		Status:       StatusConfirmed,
	})
	svc := NewService(repo, newFakeCache(), testConfig(), fixedNow)

	v, err := svc.VerifyVisitor(context.Background(), "", "Jean Dupont", "+241 07 11 11 11 11", "")
	if err != nil {
		t.Fatalf("VerifyVisitor: %v", err)
	}

	if v.MatchType != MatchExact || v.ExactMatch == nil || v.ExactMatch.ID != "A1" {
		t.Fatalf("expected exact match on A1, got %+v", v.MatchResult)
	}

	for _, want := range []string{"Jean Dupont", "aujourd'hui", "09:00", "60", "Fiscalité", "Marie"} {
		if !strings.Contains(v.Summary, want) {
			t.Errorf("summary %q missing %q", v.Summary, want)
		}
	}
}

func TestVerifyVisitorNoMatchSummary(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache(), testConfig(), fixedNow)

	v, err := svc.VerifyVisitor(context.Background(), "", "Zzzz Nonexistent", "", "")
	if err != nil {
		t.Fatalf("VerifyVisitor: %v", err)
	}
	if v.IsExpected || v.MatchType != MatchNone {
		t.Fatalf("expected no match, got %+v", v.MatchResult)
	}
	if !strings.Contains(v.Summary, "Aucun rendez-vous") {
		t.Errorf("unexpected summary: %q", v.Summary)
	}
}

func TestRosterUsesCache(t *testing.T) {
	repo := newFakeRepo(Appointment{ID: "A1", Date: fixedToday, Time: "09:00", CitizenName: "Jean Dupont", Status: StatusConfirmed})
	cache := newFakeCache()
	svc := NewService(repo, cache, testConfig(), fixedNow)

	if _, err := svc.Roster(context.Background(), fixedToday); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if _, err := svc.Roster(context.Background(), fixedToday); err != nil {
		t.Fatalf("Roster: %v", err)
	}

	if repo.listCalls != 1 {
		t.Errorf("expected one repository read, got %d", repo.listCalls)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
}

func TestRosterDisplayOrder(t *testing.T) {
	repo := newFakeRepo(
		Appointment{ID: "A1", Date: fixedToday, Time: "15:30", Status: StatusConfirmed},
		Appointment{ID: "A2", Date: fixedToday, Time: "09:00", Status: StatusConfirmed},
	)
	svc := NewService(repo, nil, testConfig(), fixedNow)

	roster, err := svc.Roster(context.Background(), fixedToday)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(roster) != 2 || roster[0].ID != "A2" || roster[1].ID != "A1" {
		t.Errorf("expected time-ordered roster, got %v", ids(roster))
	}
}

func TestCheckIn(t *testing.T) {
	repo := newFakeRepo(Appointment{
		ID:     "A1",
		Date:   fixedToday,
		Time:   "09:00",
		Status: StatusConfirmed,
	})
	cache := newFakeCache()
	svc := NewService(repo, cache, testConfig(), fixedNow)

	// Warm the cache so the invalidation is observable.
	if _, err := svc.Roster(context.Background(), fixedToday); err != nil {
		t.Fatalf("Roster: %v", err)
	}

	updated, err := svc.CheckIn(context.Background(), "A1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if updated.Status != StatusArrived {
		t.Errorf("expected arrived, got %s", updated.Status)
	}

	if len(repo.events) != 1 || repo.events[0].EventType != EventVisitorCheckedIn {
		t.Errorf("expected a check-in event, got %v", repo.events)
	}
	if _, ok := cache.entries[fixedToday]; ok {
		t.Error("expected roster cache invalidated after check-in")
	}
}

func TestCheckInRejectsBadStates(t *testing.T) {
	repo := newFakeRepo(
		Appointment{ID: "A1", Status: StatusArrived},
		Appointment{ID: "A2", Status: StatusCancelled},
	)
	svc := NewService(repo, nil, testConfig(), fixedNow)

	if _, err := svc.CheckIn(context.Background(), "A1"); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "A2"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestSweepNoShows(t *testing.T) {
	repo := newFakeRepo(
		// Yesterday, never arrived.
		Appointment{ID: "A1", Date: "2025-03-09", Time: "09:00", Status: StatusConfirmed},
		// Today, well past the grace period (clock is 10:30, grace 30m).
		Appointment{ID: "A2", Date: fixedToday, Time: "09:00", Status: StatusPending},
		// Today but within grace.
		Appointment{ID: "A3", Date: fixedToday, Time: "10:15", Status: StatusConfirmed},
		// Already arrived, untouched.
		Appointment{ID: "A4", Date: "2025-03-09", Time: "09:00", Status: StatusArrived},
	)
	svc := NewService(repo, nil, testConfig(), fixedNow)

	if err := svc.SweepNoShows(context.Background()); err != nil {
		t.Fatalf("SweepNoShows: %v", err)
	}

	for id, want := range map[string]Status{
		"A1": StatusNoShow,
		"A2": StatusNoShow,
		"A3": StatusConfirmed,
		"A4": StatusArrived,
	} {
		if got := repo.appointments[id].Status; got != want {
			t.Errorf("appointment %s: status %s, want %s", id, got, want)
		}
	}

	if len(repo.events) != 2 {
		t.Errorf("expected two no-show events, got %d", len(repo.events))
	}
}
