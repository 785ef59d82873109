package models

import (
	"time"

	"github.com/google/uuid"
)

// user roles
const (
	RoleCustomer   = "CUSTOMER"
	RoleDriver     = "DRIVER"
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

// User is a platform account of any role
type User struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// TokenPayload is the verified content of an auth token
type TokenPayload struct {
	UserID uuid.UUID
	Role   string
}
