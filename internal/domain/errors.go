package domain

import "errors"

var (
	// House errors
	ErrHouseNotFound   = errors.New("house not found")
	ErrMemberNotFound  = errors.New("member not found in house")
	ErrNotCommissioner = errors.New("only the commissioner can do this")

	// Expense errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyParticipants = errors.New("expense needs at least one participant")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrBatchIDCollision  = errors.New("batch id already exists")

	// Settlement errors
	ErrSamePayerPayee     = errors.New("cannot settle with yourself")
	ErrOverpayment        = errors.New("settlement exceeds owed balance")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer within the affordable maximum")
	ErrUnknownGood        = errors.New("unknown good type")
	ErrSettlementNotFound = errors.New("settlement not found")

	// Notification errors
	ErrMissingField         = errors.New("notification payload is missing a required field")
	ErrNotificationNotFound = errors.New("notification not found")

	// Chore/event errors
	ErrChoreNotFound = errors.New("chore not found")
	ErrEventNotFound = errors.New("event not found")
	ErrRuleNotFound  = errors.New("house rule not found")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
