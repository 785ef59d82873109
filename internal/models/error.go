package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData         = errors.New("data conflicts with existing data")
	ErrDataNotFound         = errors.New("data not found")
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidPaymentState  = errors.New("invalid payment state")
	ErrAlreadyProcessed     = errors.New("transaction already processed")
	ErrWithdrawalNotAllowed = errors.New("withdrawal not allowed for this wallet")
	ErrAssignmentConflict   = errors.New("order already assigned or no longer available")
	ErrCancellationRejected = errors.New("order can not be cancelled")
	ErrGracePeriodActive    = errors.New("grace period has not elapsed")
	ErrRestaurantTimeout    = errors.New("restaurant acceptance window has expired")
	ErrInternalError        = errors.New("internal error")
)

// InvalidTransitionError names the current and requested order status
// of an illegal lifecycle transition.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// OrderTerminalError is returned for transitions out of DELIVERED or CANCELLED.
type OrderTerminalError struct {
	Status string
}

func (e *OrderTerminalError) Error() string {
	return fmt.Sprintf("order is terminal in status %s", e.Status)
}
