package httpapi

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/openlending/lending-reservations-go/lending"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

type reservationResponse struct {
	ID        string         `json:"id"`
	Member    lending.Member `json:"member"`
	Book      lending.Book   `json:"book"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
}

type countResponse struct {
	Count int `json:"count"`
}

func toReservationResponse(reservation lending.Reservation) reservationResponse {
	return reservationResponse{
		ID:        reservation.ID.String(),
		Member:    reservation.Member,
		Book:      reservation.Book,
		StartDate: reservation.StartDate.Format(dateLayout),
		EndDate:   reservation.EndDate.Format(dateLayout),
	}
}

func toReservationResponses(reservations []lending.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationResponse(reservation))
	}

	return out
}

func parseDate(value string) (lending.ReservationDate, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return lending.ReservationDate{}, err
	}

	return lending.ToReservationDate(parsed), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
