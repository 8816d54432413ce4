package api

import (
	"time"

	"github.com/taxdesk/reception-checkin/internal/appointment"
)

type VerifyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Date  string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

type AppointmentResponse struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	CitizenName  string    `json:"citizen_name"`
	CitizenPhone string    `json:"citizen_phone"`
	CitizenEmail string    `json:"citizen_email,omitempty"`
	Service      string    `json:"service"`
	Purpose      string    `json:"purpose,omitempty"`
	Agent        string    `json:"agent"`
	Department   string    `json:"department,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type VerifyResponse struct {
	IsExpected bool                  `json:"is_expected"`
	MatchType  string                `json:"match_type"`
	Candidates []AppointmentResponse `json:"candidates"`
	ExactMatch *AppointmentResponse  `json:"exact_match,omitempty"`
	BestMatch  *AppointmentResponse  `json:"best_match,omitempty"`
	Summary    string                `json:"summary"`
}

type RosterResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toAppointmentResponse(a appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		Date:         a.Date,
		Time:         a.Time,
		Duration:     a.Duration,
		CitizenName:  a.CitizenName,
		CitizenPhone: a.CitizenPhone,
		CitizenEmail: a.CitizenEmail,
		Service:      a.Service,
		Purpose:      a.Purpose,
		Agent:        a.Agent,
		Department:   a.Department,
		Status:       string(a.Status),
		Priority:     string(a.Priority),
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}
