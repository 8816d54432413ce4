package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/taxdesk/reception-checkin/internal/appointment"
)

var dateParamRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func verifyVisitorHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Date != "" && !dateParamRegex.MatchString(req.Date) {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		verification, err := svc.VerifyVisitor(r.Context(), req.Date, req.Name, req.Phone, req.Email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		best, err := svc.BestMatch(r.Context(), req.Date, req.Name, req.Phone, req.Email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := VerifyResponse{
			IsExpected: verification.IsExpected,
			MatchType:  string(verification.MatchType),
			Candidates: toAppointmentResponses(verification.Candidates),
			Summary:    verification.Summary,
		}
		if verification.ExactMatch != nil {
			em := toAppointmentResponse(*verification.ExactMatch)
			resp.ExactMatch = &em
		}
		if best != nil {
			bm := toAppointmentResponse(*best)
			resp.BestMatch = &bm
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func listRosterHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date != "" && !dateParamRegex.MatchString(date) {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		roster, err := svc.Roster(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		shown := date
		if shown == "" && len(roster) > 0 {
			shown = roster[0].Date
		}

		writeJSON(w, http.StatusOK, RosterResponse{
			Date:         shown,
			Appointments: toAppointmentResponses(roster),
		})
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func checkInHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		appt, err := svc.CheckIn(r.Context(), id)
		if err != nil {
			handleCheckInError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func handleCheckInError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, appointment.ErrAlreadyCheckedIn):
		writeError(w, http.StatusConflict, "already_checked_in", err.Error())
	case errors.Is(err, appointment.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
