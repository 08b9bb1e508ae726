package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/auth"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/pricing"
	"github.com/sandeshlamsal/eventpasal/internal/service"
)

const (
	defaultPriceMax      = 1_000_000
	defaultUpcomingLimit = 6
	defaultFeaturedLimit = 4
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	events   *service.EventService
	payments *service.PaymentService
	users    *service.UserService
	auth     *auth.Service
	db       Pinger
}

func NewHandlers(events *service.EventService, payments *service.PaymentService,
	users *service.UserService, authSvc *auth.Service, db Pinger) *Handlers {
	return &Handlers{
		events:   events,
		payments: payments,
		users:    users,
		auth:     authSvc,
		db:       db,
	}
}

// eventResponse carries the stored event plus the price as shown on a card.
type eventResponse struct {
	domain.Event
	DisplayPrice float64 `json:"display_price"`
	PriceLabel   string  `json:"price_label"`
}

func toEventResponse(ev domain.Event) eventResponse {
	display := pricing.Display(ev.Price)
	return eventResponse{Event: ev, DisplayPrice: display, PriceLabel: pricing.DisplayLabel(ev.Price)}
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "you do not own this resource", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrCapacityFull),
		errors.Is(err, domain.ErrNotFreeEvent),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrSerializationFailure):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(domain.ErrInvalidInput, "invalid id")
	}
	return id, nil
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string          `json:"email"`
		Password string          `json:"password"`
		FullName string          `json:"full_name"`
		UserType domain.UserType `json:"user_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.FullName, req.UserType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	if user == nil {
		writeError(w, domain.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	criteria, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	events, err := h.events.List(r.Context(), r.URL.Query().Get("search"), criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handlers) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Upcoming(r.Context(), queryLimit(r, defaultUpcomingLimit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handlers) FeaturedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Featured(r.Context(), queryLimit(r, defaultFeaturedLimit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ev, err := h.events.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*ev))
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req service.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ev, err := h.events.Create(r.Context(), UserFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(*ev))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.UpdateEventInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ev, err := h.events.Update(r.Context(), UserFrom(r.Context()), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*ev))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.events.Delete(r.Context(), UserFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) MyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Mine(r.Context(), UserFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Handlers) RegisterFree(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.events.RegisterFree(r.Context(), UserFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req service.InitiatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	booking, err := h.payments.Initiate(r.Context(), UserFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	// Accepted, not created: the confirmation runs after the gateway delay.
	writeJSON(w, http.StatusAccepted, booking)
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.payments.GetBooking(r.Context(), UserFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.payments.MyBookings(r.Context(), UserFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	notifs, err := h.users.Notifications(r.Context(), UserFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifs)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.MarkRead(r.Context(), UserFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.users.UpdateProfile(r.Context(), UserFrom(r.Context()), req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func filterFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	q := r.URL.Query()
	criteria := domain.FilterCriteria{
		Category: q.Get("category"),
		Location: q.Get("location"),
		PriceMax: defaultPriceMax,
	}
	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return criteria, errors.Wrap(domain.ErrInvalidInput, "date must be YYYY-MM-DD")
		}
		criteria.Date = &date
	}
	if raw := q.Get("price_min"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errors.Wrap(domain.ErrInvalidInput, "price_min must be a number")
		}
		criteria.PriceMin = min
	}
	if raw := q.Get("price_max"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errors.Wrap(domain.ErrInvalidInput, "price_max must be a number")
		}
		criteria.PriceMax = max
	}
	return criteria, nil
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}
