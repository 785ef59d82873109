package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// wallet owner kind
const (
	OwnerKindCustomer   = "CUSTOMER"
	OwnerKindDriver     = "DRIVER"
	OwnerKindRestaurant = "RESTAURANT"
)

// wallet transaction type
const (
	TxTypeTopUp               = "TOPUP"
	TxTypeOrderPayment        = "ORDER_PAYMENT"
	TxTypeRefund              = "REFUND"
	TxTypeEarning             = "EARNING"
	TxTypeWithdrawal          = "WITHDRAWAL"
	TxTypeCommissionDeduction = "COMMISSION_DEDUCTION"
)

// wallet transaction status
const (
	TxStatusPending  = "PENDING"
	TxStatusApproved = "APPROVED"
	TxStatusRejected = "REJECTED"
)

// Wallet is a per-party account with lifetime aggregates.
// Created lazily on first access or credit.
type Wallet struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	OwnerKind      string
	Balance        decimal.Decimal
	TotalEarnings  decimal.Decimal
	TotalTopUps    decimal.Decimal
	TotalSpent     decimal.Decimal
	TotalWithdrawn decimal.Decimal
	CanWithdraw    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WalletTransaction is an append-only ledger line.
// Amount is signed: negative means debit.
type WalletTransaction struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	OwnerKind      string
	Amount         decimal.Decimal
	Type           string
	Status         string
	Description    string
	RelatedOrderID *uuid.UUID
	AdminID        *uuid.UUID
	AdminNotes     string
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// BalanceCheck is a pre-flight balance verdict. It is not a lock:
// the debit path re-checks atomically.
type BalanceCheck struct {
	Balance    decimal.Decimal
	Sufficient bool
}
