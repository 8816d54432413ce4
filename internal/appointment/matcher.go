package appointment

import (
	"sort"
	"strings"
	"time"

	"github.com/taxdesk/reception-checkin/internal/matching"
)

// bestMatchThreshold is the minimum similarity score FindBestMatch accepts.
const bestMatchThreshold = 50

const dateLayout = "2006-01-02"

// Matcher matches walk-in visitors against an in-memory roster. The clock is
// injected so "today" is deterministic in tests; a nil func means time.Now.
type Matcher struct {
	now func() time.Time
}

func NewMatcher(now func() time.Time) *Matcher {
	if now == nil {
		now = time.Now
	}
	return &Matcher{now: now}
}

func (m *Matcher) today() string {
	return m.now().Format(dateLayout)
}

// Match finds the appointments matching a visitor's name plus optional phone
// and email. Exact requires name equality and at least one matching contact
// channel; failing that, partial keeps every appointment related to the name
// by substring containment. Never returns an error: malformed or missing
// fields simply do not match.
func (m *Matcher) Match(appts []Appointment, name, phone, email string) MatchResult {
	normName := matching.Normalize(name)
	if normName == "" {
		return MatchResult{IsExpected: false, MatchType: MatchNone, Candidates: []Appointment{}}
	}

	exact := exactCandidates(appts, normName, phone, email)
	if len(exact) > 0 {
		picked := m.pickExact(exact)
		return MatchResult{
			IsExpected: true,
			MatchType:  MatchExact,
			Candidates: exact,
			ExactMatch: &picked,
		}
	}

	var partial []Appointment
	for _, a := range appts {
		if nameContains(matching.Normalize(a.CitizenName), normName) {
			partial = append(partial, a)
		}
	}
	if len(partial) > 0 {
		return MatchResult{IsExpected: true, MatchType: MatchPartial, Candidates: partial}
	}

	return MatchResult{IsExpected: false, MatchType: MatchNone, Candidates: []Appointment{}}
}

// FindBestMatch returns the single best appointment for a visitor, or nil.
// Exact matches win and prefer today's appointment; otherwise appointments are
// ranked by name similarity and the top score above the threshold is taken,
// first occurrence on ties. This similarity ranking is deliberately distinct
// from Match's substring filter: one feeds a single-field auto-fill, the other
// a multi-candidate list.
func (m *Matcher) FindBestMatch(appts []Appointment, name, phone, email string) *Appointment {
	normName := matching.Normalize(name)
	if normName == "" {
		return nil
	}

	exact := exactCandidates(appts, normName, phone, email)
	if len(exact) > 0 {
		picked := m.pickExact(exact)
		return &picked
	}

	best := -1
	bestScore := bestMatchThreshold
	for i, a := range appts {
		if score := matching.Similarity(name, a.CitizenName); score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return nil
	}

	picked := appts[best]
	return &picked
}

// SortForDisplay orders a candidate list for the reception screen: today's
// appointments first, then by time ascending within each bucket. The input
// slice is left untouched.
func (m *Matcher) SortForDisplay(appts []Appointment) []Appointment {
	today := m.today()

	sorted := make([]Appointment, len(appts))
	copy(sorted, appts)

	sort.SliceStable(sorted, func(i, j int) bool {
		iToday := sorted[i].Date == today
		jToday := sorted[j].Date == today
		if iToday != jToday {
			return iToday
		}
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Time < sorted[j].Time
	})

	return sorted
}

// pickExact chooses among several exact candidates, preferring the first one
// dated today, falling back to the first in input order.
func (m *Matcher) pickExact(exact []Appointment) Appointment {
	today := m.today()
	for _, a := range exact {
		if a.Date == today {
			return a
		}
	}
	return exact[0]
}

func exactCandidates(appts []Appointment, normName, phone, email string) []Appointment {
	normEmail := matching.NormalizeEmail(email)

	var exact []Appointment
	for _, a := range appts {
		if matching.Normalize(a.CitizenName) != normName {
			continue
		}
		if contactChannelMatches(a, phone, normEmail) {
			exact = append(exact, a)
		}
	}
	return exact
}

// contactChannelMatches requires at least one supplied channel to line up.
// Absent query fields never match; they are not errors.
func contactChannelMatches(a Appointment, phone, normEmail string) bool {
	if phone != "" && matching.PhonesMatch(phone, a.CitizenPhone) {
		return true
	}
	if normEmail != "" && a.CitizenEmail != "" && matching.NormalizeEmail(a.CitizenEmail) == normEmail {
		return true
	}
	return false
}

func nameContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
