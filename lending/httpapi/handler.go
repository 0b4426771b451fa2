package httpapi

import (
	"errors"
	"net/http"

	"github.com/openlending/lending-reservations-go/lending"
)

const (
	logMsgRequestFailed  = "request failed"
	logMsgMalformedInput = "malformed request input"

	logAttrMethod = "method"
	logAttrPath   = "path"
	logAttrError  = "error"
)

// Construction errors.
var ErrNilStores = errors.New("nil stores supplied")

// Handler serves the lending API. The engine carries the lifecycle
// operations; the stores back the member and book administration routes.
type Handler struct {
	engine lending.Engine
	stores lending.Stores
	logger lending.Logger
}

// Option defines a functional option for configuring a Handler.
type Option func(*Handler) error

// WithLogger sets the logger for the Handler.
func WithLogger(logger lending.Logger) Option {
	return func(h *Handler) error {
		h.logger = logger
		return nil
	}
}

// NewHandler creates a Handler for the given engine and stores.
func NewHandler(engine lending.Engine, stores lending.Stores, options ...Option) (*Handler, error) {
	if stores == nil {
		return nil, ErrNilStores
	}

	h := &Handler{
		engine: engine,
		stores: stores,
	}

	for _, option := range options {
		if err := option(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Mux returns a mux with all API routes registered.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /reservations", h.createReservation)
	mux.HandleFunc("GET /reservations", h.activeReservations)
	mux.HandleFunc("DELETE /reservations/{id}", h.cancelReservation)

	mux.HandleFunc("GET /members", h.searchMembers)
	mux.HandleFunc("GET /members/{code}", h.getMember)
	mux.HandleFunc("PUT /members/{code}", h.saveMember)
	mux.HandleFunc("DELETE /members/{code}", h.deleteMember)
	mux.HandleFunc("GET /members/{code}/reservations", h.activeReservationsForMember)
	mux.HandleFunc("GET /members/{code}/reservations/history", h.reservationHistoryForMember)

	mux.HandleFunc("GET /books", h.searchBooks)
	mux.HandleFunc("GET /books/{isbn}", h.getBook)
	mux.HandleFunc("PUT /books/{isbn}", h.saveBook)
	mux.HandleFunc("DELETE /books/{isbn}", h.deleteBook)

	mux.HandleFunc("POST /jobs/overdue-reminders", h.runOverdueReminders)
	mux.HandleFunc("POST /jobs/expiry-sweep", h.runExpirySweep)

	return mux
}

// statusFor maps domain errors onto HTTP status codes. Unknown errors are
// treated as internal failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lending.ErrMemberNotFound),
		errors.Is(err, lending.ErrBookNotFound),
		errors.Is(err, lending.ErrReservationNotFound):
		return http.StatusNotFound

	case errors.Is(err, lending.ErrBookUnavailable),
		errors.Is(err, lending.ErrQuotaExceeded),
		errors.Is(err, lending.ErrReservationAlreadyEnded):
		return http.StatusConflict

	case errors.Is(err, lending.ErrInvalidDateRange):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.Error(logMsgRequestFailed,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrError, err.Error())
	}

	writeError(w, status, err.Error())
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	if h.logger != nil {
		h.logger.Debug(logMsgMalformedInput,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrError, err.Error())
	}

	writeError(w, http.StatusBadRequest, err.Error())
}
