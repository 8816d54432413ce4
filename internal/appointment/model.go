package appointment

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Appointment is one scheduled reception visit. Date is YYYY-MM-DD and Time is
// zero-padded HH:MM; both stay strings end to end because that is how the
// roster stores and compares them.
type Appointment struct {
	ID           string
	Date         string
	Time         string
	Duration     int // minutes
	CitizenName  string
	CitizenPhone string
	CitizenEmail string
	Service      string
	Purpose      string
	Agent        string
	Department   string
	Status       Status
	Priority     Priority
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchNone    MatchType = "none"
)

// MatchResult is the outcome of matching a visitor against the roster.
// On an exact match, ExactMatch is the single best pick (today's appointment
// when several qualify) while Candidates carries every exact candidate, since
// list-style consumers want all of them.
type MatchResult struct {
	IsExpected bool
	MatchType  MatchType
	Candidates []Appointment
	ExactMatch *Appointment
}

// VisitEvent records a status change on a visit (check-in, no-show sweep).
type VisitEvent struct {
	ID            int64
	EventType     string
	AppointmentID *string
	Payload       []byte
	CreatedAt     time.Time
}
