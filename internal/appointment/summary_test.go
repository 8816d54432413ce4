package appointment

import (
	"strings"
	"testing"
)

func TestSummarizeNotFound(t *testing.T) {
	s := NewSummarizer(fixedNow)

	got := s.Summarize(false, nil, MatchNone)
	if got != "Aucun rendez-vous trouvé pour ce visiteur" {
		t.Errorf("unexpected not-found message: %q", got)
	}
}

func TestSummarizeFoundWithoutDetails(t *testing.T) {
	s := NewSummarizer(fixedNow)

	got := s.Summarize(true, nil, MatchExact)
	if !strings.Contains(got, "détails") {
		t.Errorf("fallback message should mention missing details: %q", got)
	}
	if got == s.Summarize(false, nil, MatchNone) {
		t.Error("fallback must differ from the not-found message")
	}
}

func TestSummarizeExactToday(t *testing.T) {
	s := NewSummarizer(fixedNow)

	appt := &Appointment{
		ID:          "A1",
		Date:        fixedToday,
		Time:        "09:00",
		Duration:    60,
		CitizenName: "Jean Dupont",
		Service:     "Fiscalité",
		Agent:       "Marie",
	}

	got := s.Summarize(true, appt, MatchExact)

	for _, want := range []string{"Jean Dupont", "aujourd'hui", "09:00", "60", "Fiscalité", "Marie", "vérifié et confirmé"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestSummarizePartialFutureDate(t *testing.T) {
	s := NewSummarizer(fixedNow)

	appt := &Appointment{
		Date:        fixedTomorrow,
		Time:        "14:00",
		Duration:    45,
		CitizenName: "Marie OBAME",
		Service:     "TVA",
		Agent:       "Luc",
	}

	got := s.Summarize(true, appt, MatchPartial)

	if !strings.Contains(got, "Correspondance possible") {
		t.Errorf("partial lead-in missing: %q", got)
	}
	if strings.Contains(got, "aujourd'hui") {
		t.Errorf("tomorrow's visit must not read as today: %q", got)
	}
	if !strings.Contains(got, "11/03/2025") {
		t.Errorf("expected French date in %q", got)
	}
}

func TestSummarizeUnparseableDate(t *testing.T) {
	s := NewSummarizer(fixedNow)

	appt := &Appointment{
		Date:        "soon",
		Time:        "10:00",
		Duration:    30,
		CitizenName: "Paul OBIANG",
		Service:     "Recouvrement",
		Agent:       "Sylvie",
	}

	got := s.Summarize(true, appt, MatchExact)
	if !strings.Contains(got, "soon") {
		t.Errorf("unparseable date should pass through raw, got %q", got)
	}
}
