package models

import (
	"time"

	"github.com/google/uuid"
)

// assignment status
const (
	AssignmentStatusOffered   = "OFFERED"
	AssignmentStatusAccepted  = "ACCEPTED"
	AssignmentStatusDeclined  = "DECLINED"
	AssignmentStatusExpired   = "EXPIRED"
	AssignmentStatusCompleted = "COMPLETED"
)

// Assignment is a single driver offer for an order within a wave
type Assignment struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	DriverID    uuid.UUID
	Status      string
	Wave        int
	OfferedAt   time.Time
	ExpiresAt   time.Time
	RespondedAt *time.Time
	AcceptedAt  *time.Time
}

// IsOpen reports whether the offer is still awaiting a response
func (a *Assignment) IsOpen(now time.Time) bool {
	return a.Status == AssignmentStatusOffered && now.Before(a.ExpiresAt)
}
