package appointment

import (
	"context"
	"errors"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// Roster reads
	ListByDate(ctx context.Context, date string) ([]Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)

	// Status transitions, compare-and-swap on the current status
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Appointment, error)

	// No-show worker: pending/confirmed visits past their scheduled moment
	FindOverdue(ctx context.Context, date, cutoff string) ([]Appointment, error)

	// Event logging
	InsertEvent(ctx context.Context, ev VisitEvent) error
}
