package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
)

// EventUseCase handles house events, RSVPs, and billing an event's cost
// into the ledger.
type EventUseCase struct {
	houseRepo   HouseRepository
	eventRepo   EventRepository
	expenseUC   *ExpenseUseCase
	leaderboard LeaderboardRepository
	notifier    Notifier
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(
	houseRepo HouseRepository,
	eventRepo EventRepository,
	expenseUC *ExpenseUseCase,
	leaderboard LeaderboardRepository,
	notifier Notifier,
	idGen IDGenerator,
	logger zerolog.Logger,
) *EventUseCase {
	return &EventUseCase{
		houseRepo:   houseRepo,
		eventRepo:   eventRepo,
		expenseUC:   expenseUC,
		leaderboard: leaderboard,
		notifier:    notifier,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateEventInput represents a new event.
type CreateEventInput struct {
	HouseID     string
	Title       string
	Description string
	Date        time.Time
	CreatedBy   string
	Cost        decimal.Decimal
	Invitees    []string
}

// CreateEvent creates an event with pending RSVPs for every invitee and
// awards hosting points to the creator.
func (uc *EventUseCase) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	if _, err := uc.houseRepo.GetMember(ctx, input.HouseID, input.CreatedBy); err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:          uc.idGen.Generate(),
		HouseID:     input.HouseID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		CreatedBy:   input.CreatedBy,
		Cost:        input.Cost,
		CreatedAt:   time.Now().UTC(),
	}

	attendees := make([]*domain.EventAttendee, 0, len(input.Invitees))
	for _, userID := range input.Invitees {
		status := domain.RSVPPending
		if userID == input.CreatedBy {
			status = domain.RSVPAccepted
		}
		attendees = append(attendees, &domain.EventAttendee{
			ID:      uc.idGen.Generate(),
			EventID: event.ID,
			UserID:  userID,
			Status:  status,
		})
	}

	if err := uc.eventRepo.Create(ctx, event, attendees); err != nil {
		return nil, err
	}

	if err := uc.leaderboard.AddPoints(ctx, input.HouseID, input.CreatedBy, domain.PointsEventHosted, domain.ReasonEventHosted); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", input.CreatedBy).Msg("failed to award hosting points")
	}

	for _, a := range attendees {
		if a.UserID == input.CreatedBy {
			continue
		}

		if _, err := uc.notifier.Emit(ctx, a.UserID, domain.NotificationEvent, domain.NotificationPayload{
			Title: event.Title,
			Date:  event.Date.Format("2006-01-02"),
			Count: len(attendees),
		}); err != nil {
			uc.logger.Warn().Err(err).Str("member_id", a.UserID).Msg("failed to emit event notification")
		}
	}

	return event, nil
}

// RSVP records a member's response to an event invite.
func (uc *EventUseCase) RSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) error {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	return uc.eventRepo.SetRSVP(ctx, eventID, userID, status)
}

// BillEvent accepts an event's cost into the ledger as an expense paid
// by the host and split among accepted attendees.
func (uc *EventUseCase) BillEvent(ctx context.Context, eventID string) (*AcceptedBatch, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.Billed || event.Cost.LessThanOrEqual(decimal.Zero) {
		return &AcceptedBatch{}, nil
	}

	attendees, err := uc.eventRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var participants []string
	for _, a := range attendees {
		if a.Status == domain.RSVPAccepted {
			participants = append(participants, a.UserID)
		}
	}

	// Claim the billing before touching the ledger. Concurrent calls
	// both read billed = false above; only the one that wins the claim
	// may accept the cost, so the event is never billed twice.
	claimed, err := uc.eventRepo.ClaimBilling(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return &AcceptedBatch{}, nil
	}

	batch, err := uc.expenseUC.AcceptEntries(ctx, AcceptEntriesInput{
		HouseID: event.HouseID,
		PayerID: event.CreatedBy,
		Entries: []domain.NormalizedTransaction{{
			Date:        event.Date,
			Description: event.Title,
			Amount:      event.Cost,
			Category:    domain.CategoryFun,
		}},
		Participants: participants,
	})
	if err != nil {
		if relErr := uc.eventRepo.ReleaseBilling(ctx, eventID); relErr != nil {
			uc.logger.Error().Err(relErr).Str("event_id", eventID).Msg("failed to release billing claim")
		}
		return nil, err
	}

	return batch, nil
}

// ListEvents lists a house's events.
func (uc *EventUseCase) ListEvents(ctx context.Context, houseID string) ([]*domain.Event, error) {
	return uc.eventRepo.ListByHouse(ctx, houseID)
}
