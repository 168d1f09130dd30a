package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// EventService defines the behavior needed by EventHandler.
type EventService interface {
	CreateEvent(ctx context.Context, input usecase.CreateEventInput) (*domain.Event, error)
	RSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) error
	BillEvent(ctx context.Context, eventID string) (*usecase.AcceptedBatch, error)
	ListEvents(ctx context.Context, houseID string) ([]*domain.Event, error)
}

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	eventUC EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventUC EventService) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Create creates a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.eventUC.CreateEvent(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// RSVP records a member's response to an event invite.
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	var req dto.RSVPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.eventUC.RSVP(r.Context(), chi.URLParam(r, "eventID"), req.UserID, domain.RSVPStatus(req.Status)); err != nil {
		writeError(w, mapDomainError(err), "failed to record rsvp", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Bill accepts an event's cost into the ledger.
func (h *EventHandler) Bill(w http.ResponseWriter, r *http.Request) {
	batch, err := h.eventUC.BillEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to bill event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BatchFromUseCase(batch))
}

// List lists a house's events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventUC.ListEvents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list events", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventsFromDomain(events))
}
