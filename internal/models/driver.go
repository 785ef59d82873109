package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverState tracks online presence and the cached count of
// accepted assignments. The count is authoritative only after
// reconciliation against the assignments table.
type DriverState struct {
	DriverID               uuid.UUID
	IsOnline               bool
	OnlineSince            *time.Time
	ActiveAssignmentsCount int
	LastHeartbeatAt        time.Time
}
