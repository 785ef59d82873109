package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// order status
const (
	OrderStatusPending    = "PENDING"
	OrderStatusAccepted   = "ACCEPTED"
	OrderStatusPreparing  = "PREPARING"
	OrderStatusReady      = "READY"
	OrderStatusPickedUp   = "PICKED_UP"
	OrderStatusDelivering = "DELIVERING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// payment status
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusEscrowed = "ESCROWED"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

// payment method
const (
	PaymentMethodWallet = "WALLET"
	PaymentMethodCard   = "CARD"
	PaymentMethodCash   = "CASH"
)

// Order is order entity
type Order struct {
	ID                       uuid.UUID
	CustomerID               uuid.UUID
	RestaurantID             uuid.UUID
	DriverID                 *uuid.UUID
	Status                   string
	PaymentStatus            string
	PaymentMethod            string
	ItemsSubtotal            decimal.Decimal
	DeliveryFee              decimal.Decimal
	TotalPrice               decimal.Decimal
	RestaurantCommission     decimal.Decimal
	DeliveryCommission       decimal.Decimal
	PlatformEarnings         decimal.Decimal
	DriverEarning            decimal.Decimal
	RequiresManualProcessing bool
	CreatedAt                time.Time
	AcceptedAt               *time.Time
	DeliveredAt              *time.Time
	EstimatedPickupTime      *time.Time
}

// Age returns elapsed time since order placement
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}

// IsTerminal reports whether order reached a terminal status
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// RestaurantEarning is the restaurant payout: subtotal less commission
func (o *Order) RestaurantEarning() decimal.Decimal {
	return o.ItemsSubtotal.Sub(o.RestaurantCommission)
}

// cancellation reasons
const (
	CancelReasonFreeWindow        = "FREE_CANCELLATION_WINDOW"
	CancelReasonRestaurantTimeout = "RESTAURANT_TIMEOUT"
	CancelReasonBeforeAcceptance  = "BEFORE_RESTAURANT_ACCEPTANCE"
	CancelReasonAccepted          = "RESTAURANT_ACCEPTED"
	CancelReasonCompleted         = "ORDER_COMPLETED"
)

// CancelCheck is the verdict of a cancellation eligibility check
type CancelCheck struct {
	CanCancel bool
	Reason    string
	Message   string
}

// TimeoutCheck is the verdict of a restaurant timeout check
type TimeoutCheck struct {
	HasTimedOut bool
	Age         time.Duration
}
