package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/taxdesk/reception-checkin/internal/config"
)

const (
	EventVisitorCheckedIn = "VISITOR_CHECKED_IN"
	EventMarkedNoShow     = "VISIT_MARKED_NO_SHOW"
)

var (
	ErrAlreadyCheckedIn        = errors.New("visitor already checked in")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// RosterCache caches the serialized roster for a given day. A miss is a nil
// payload with a nil error; cache failures are soft and only logged.
type RosterCache interface {
	GetRoster(ctx context.Context, date string) ([]byte, error)
	SetRoster(ctx context.Context, date string, payload []byte) error
	InvalidateRoster(ctx context.Context, date string) error
}

// Service answers the reception desk: who is expected, who just arrived, and
// who never showed up.
type Service struct {
	repo    Repository
	cache   RosterCache
	matcher *Matcher
	summ    *Summarizer
	cfg     config.Config
	now     func() time.Time
}

func NewService(repo Repository, cache RosterCache, cfg config.Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		matcher: NewMatcher(now),
		summ:    NewSummarizer(now),
		cfg:     cfg,
		now:     now,
	}
}

// Verification is a MatchResult plus the sentence the desk displays.
type Verification struct {
	MatchResult
	Summary string
}

// VerifyVisitor matches a walk-in visitor against the roster for the given
// date (today when empty). Called on every keystroke of the registration
// form, so it only reads.
func (s *Service) VerifyVisitor(ctx context.Context, date, name, phone, email string) (*Verification, error) {
	roster, err := s.roster(ctx, s.orToday(date))
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	result := s.matcher.Match(roster, name, phone, email)

	var subject *Appointment
	switch {
	case result.ExactMatch != nil:
		subject = result.ExactMatch
	case len(result.Candidates) > 0:
		subject = &result.Candidates[0]
	}

	return &Verification{
		MatchResult: result,
		Summary:     s.summ.Summarize(result.IsExpected, subject, result.MatchType),
	}, nil
}

// BestMatch returns the single best roster entry for form auto-fill, or nil.
func (s *Service) BestMatch(ctx context.Context, date, name, phone, email string) (*Appointment, error) {
	roster, err := s.roster(ctx, s.orToday(date))
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return s.matcher.FindBestMatch(roster, name, phone, email), nil
}

// Roster returns the day's appointments in display order: today's visits
// first, then by time.
func (s *Service) Roster(ctx context.Context, date string) ([]Appointment, error) {
	roster, err := s.roster(ctx, s.orToday(date))
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return s.matcher.SortForDisplay(roster), nil
}

// GetAppointment retrieves a single visit by ID.
func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appt, nil
}

// CheckIn marks a pending or confirmed visit as arrived.
func (s *Service) CheckIn(ctx context.Context, id string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if appt.Status == StatusArrived {
		return nil, ErrAlreadyCheckedIn
	}
	if appt.Status != StatusPending && appt.Status != StatusConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, appt.Status, StatusArrived)
	if err != nil {
		return nil, fmt.Errorf("check in appointment: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventVisitorCheckedIn, map[string]any{
		"citizen_name": updated.CitizenName,
		"visit_date":   updated.Date,
		"visit_time":   updated.Time,
	})
	s.invalidate(ctx, updated.Date)

	return updated, nil
}

// SweepNoShows flags overdue pending/confirmed visits as no-shows. Intended to
// be called by the worker periodically; the grace period keeps late arrivals
// out of the sweep.
func (s *Service) SweepNoShows(ctx context.Context) error {
	cutoffAt := s.now().Add(-s.cfg.NoShowGrace)
	today := s.now().Format(dateLayout)
	cutoff := cutoffAt.Format("15:04")

	overdue, err := s.repo.FindOverdue(ctx, today, cutoff)
	if err != nil {
		return fmt.Errorf("find overdue appointments: %w", err)
	}

	for _, appt := range overdue {
		updated, err := s.repo.UpdateStatus(ctx, appt.ID, appt.Status, StatusNoShow)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				// Status moved under us, nothing to do.
				continue
			}
			log.Printf("failed to mark appointment %s as no-show: %v", appt.ID, err)
			continue
		}
		s.logEvent(ctx, updated.ID, EventMarkedNoShow, map[string]any{
			"visit_date": updated.Date,
			"visit_time": updated.Time,
		})
		s.invalidate(ctx, updated.Date)
	}

	return nil
}

func (s *Service) orToday(date string) string {
	if date == "" {
		return s.now().Format(dateLayout)
	}
	return date
}

// roster loads a day's appointments through the cache.
func (s *Service) roster(ctx context.Context, date string) ([]Appointment, error) {
	if s.cache != nil {
		payload, err := s.cache.GetRoster(ctx, date)
		if err != nil {
			log.Printf("roster cache read for %s: %v", date, err)
		} else if payload != nil {
			var cached []Appointment
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			log.Printf("roster cache payload for %s is corrupt, falling back to db", date)
		}
	}

	roster, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(roster); err == nil {
			if err := s.cache.SetRoster(ctx, date, payload); err != nil {
				log.Printf("roster cache write for %s: %v", date, err)
			}
		}
	}

	return roster, nil
}

func (s *Service) invalidate(ctx context.Context, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRoster(ctx, date); err != nil {
		log.Printf("roster cache invalidation for %s: %v", date, err)
	}
}

func (s *Service) logEvent(ctx context.Context, appointmentID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal event payload for %s: %v", eventType, err)
		data = nil
	}

	apptID := appointmentID

	ev := VisitEvent{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     s.now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		log.Printf("failed to insert visit event %s for appointment %s: %v", eventType, appointmentID, err)
	}
}
