package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

type createReservationRequest struct {
	MemberCode string `json:"member_code"`
	ISBN       string `json:"isbn"`
	EndDate    string `json:"end_date"`
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var request createReservationRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	endDate, err := parseDate(request.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	reservation, err := h.engine.CreateReservation(r.Context(), request.MemberCode, request.ISBN, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReservationResponse(reservation))
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if cancelErr := h.engine.CancelReservation(r.Context(), id); cancelErr != nil {
		h.domainError(w, r, cancelErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activeReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.engine.ActiveReservations(r.Context())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h *Handler) activeReservationsForMember(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.engine.ActiveReservationsForMember(r.Context(), r.PathValue("code"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h *Handler) reservationHistoryForMember(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.engine.ReservationHistoryForMember(r.Context(), r.PathValue("code"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h *Handler) runOverdueReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.engine.SendOverdueReminders(r.Context())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: sent})
}

func (h *Handler) runExpirySweep(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.engine.PurgeExpiredReservations(r.Context())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: deleted})
}
