package appointment

import (
	"fmt"
	"time"
)

// Summarizer renders a verification outcome as a French sentence for the
// reception screen. Clock injection mirrors Matcher so "aujourd'hui" agrees
// with the matching decision.
type Summarizer struct {
	now func() time.Time
}

func NewSummarizer(now func() time.Time) *Summarizer {
	if now == nil {
		now = time.Now
	}
	return &Summarizer{now: now}
}

// Summarize builds the sentence shown next to the verification badge.
func (s *Summarizer) Summarize(found bool, appt *Appointment, matchType MatchType) string {
	if !found {
		return "Aucun rendez-vous trouvé pour ce visiteur"
	}
	if appt == nil {
		return "Rendez-vous trouvé mais les détails ne sont pas disponibles"
	}

	lead := "Correspondance possible trouvée pour"
	if matchType == MatchExact {
		lead = "Rendez-vous vérifié et confirmé pour"
	}

	return fmt.Sprintf("%s %s %s à %s (%d minutes) - Service: %s, Agent: %s",
		lead,
		appt.CitizenName,
		s.formatDay(appt.Date),
		appt.Time,
		appt.Duration,
		appt.Service,
		appt.Agent,
	)
}

// formatDay renders the visit day: "aujourd'hui" when the date is today,
// the French dd/mm/yyyy form otherwise, and the raw string when it does not
// parse rather than failing.
func (s *Summarizer) formatDay(date string) string {
	if date == s.now().Format(dateLayout) {
		return "aujourd'hui"
	}

	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Sprintf("le %s", date)
	}
	return fmt.Sprintf("le %s", d.Format("02/01/2006"))
}
