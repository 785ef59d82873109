package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletRepository is interface for interacting with wallet-related data
type WalletRepository interface {
	// GetOrCreateWallet lazily creates the wallet on first access
	GetOrCreateWallet(ctx context.Context, ownerID uuid.UUID, kind string) (*models.Wallet, error)
	// ApplyEarning credits the wallet with an approved ledger line
	ApplyEarning(ctx context.Context, t *models.WalletTransaction) error
	// CreatePendingTransaction appends a PENDING ledger line
	CreatePendingTransaction(ctx context.Context, t *models.WalletTransaction) error
	// ProcessTransaction flips a PENDING transaction and applies its mutation
	ProcessTransaction(ctx context.Context, id, adminID uuid.UUID, notes, newStatus string) (*models.WalletTransaction, error)
	// GetTransactionsByOwner returns the owner's ledger
	GetTransactionsByOwner(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.WalletTransaction, error)
	// GetPendingTransactions returns the admin review queue
	GetPendingTransactions(ctx context.Context) ([]models.WalletTransaction, error)
}

// WalletService implements the multi-party wallet ledger
type WalletService struct {
	repo    WalletRepository
	emitter notify.Emitter
	logger  *zap.Logger
}

// NewWalletService creates new WalletService instance
func NewWalletService(repo WalletRepository, emitter notify.Emitter, logger *zap.Logger) *WalletService {
	return &WalletService{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
	}
}

// GetWallet returns the wallet, creating it on first access.
func (ws *WalletService) GetWallet(ctx context.Context, ownerID uuid.UUID, kind string) (*models.Wallet, error) {
	return ws.repo.GetOrCreateWallet(ctx, ownerID, kind)
}

// ApplyEarning credits the wallet and records the approved ledger
// line atomically.
func (ws *WalletService) ApplyEarning(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal, relatedOrderID *uuid.UUID, description string) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	now := time.Now()
	t := &models.WalletTransaction{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		OwnerKind:      kind,
		Amount:         amount,
		Type:           models.TxTypeEarning,
		Status:         models.TxStatusApproved,
		Description:    description,
		RelatedOrderID: relatedOrderID,
		ProcessedAt:    &now,
	}

	if err := ws.repo.ApplyEarning(ctx, t); err != nil {
		return nil, err
	}

	ws.emitter.Emit(models.EventWalletTxProcessed, walletEvent(t))

	return t, nil
}

// RequestTopUp records a PENDING top-up. The balance is untouched
// until an administrator approves it.
func (ws *WalletService) RequestTopUp(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	t := &models.WalletTransaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		OwnerKind:   kind,
		Amount:      amount,
		Type:        models.TxTypeTopUp,
		Status:      models.TxStatusPending,
		Description: "wallet top-up request",
	}

	if err := ws.repo.CreatePendingTransaction(ctx, t); err != nil {
		return nil, err
	}

	ws.emitter.Emit(models.EventWalletTxRequested, walletEvent(t))

	return t, nil
}

// RequestWithdrawal records a PENDING withdrawal. Requires the wallet
// withdrawal eligibility flag and a covering balance at request time.
func (ws *WalletService) RequestWithdrawal(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	wallet, err := ws.repo.GetOrCreateWallet(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}

	if !wallet.CanWithdraw {
		return nil, models.ErrWithdrawalNotAllowed
	}
	if wallet.Balance.LessThan(amount) {
		return nil, models.ErrInsufficientBalance
	}

	t := &models.WalletTransaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		OwnerKind:   kind,
		Amount:      amount.Neg(),
		Type:        models.TxTypeWithdrawal,
		Status:      models.TxStatusPending,
		Description: fmt.Sprintf("withdrawal request for %s", amount.StringFixed(2)),
	}

	if err := ws.repo.CreatePendingTransaction(ctx, t); err != nil {
		return nil, err
	}

	ws.emitter.Emit(models.EventWalletTxRequested, walletEvent(t))

	return t, nil
}

// ApproveTransaction applies the pending mutation exactly once.
// Re-approval of a processed transaction fails with ErrAlreadyProcessed.
func (ws *WalletService) ApproveTransaction(ctx context.Context, id, adminID uuid.UUID, notes string) (*models.WalletTransaction, error) {
	t, err := ws.repo.ProcessTransaction(ctx, id, adminID, notes, models.TxStatusApproved)
	if err != nil {
		return nil, err
	}

	ws.emitter.Emit(models.EventWalletTxProcessed, walletEvent(t))

	return t, nil
}

// RejectTransaction terminates the request without any balance mutation.
func (ws *WalletService) RejectTransaction(ctx context.Context, id, adminID uuid.UUID, notes string) (*models.WalletTransaction, error) {
	t, err := ws.repo.ProcessTransaction(ctx, id, adminID, notes, models.TxStatusRejected)
	if err != nil {
		return nil, err
	}

	ws.emitter.Emit(models.EventWalletTxProcessed, walletEvent(t))

	return t, nil
}

// CheckSufficientBalance is the advisory pre-flight gate before a
// payment debit. The debit path re-checks atomically.
func (ws *WalletService) CheckSufficientBalance(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (models.BalanceCheck, error) {
	wallet, err := ws.repo.GetOrCreateWallet(ctx, ownerID, kind)
	if err != nil {
		return models.BalanceCheck{}, err
	}

	return models.BalanceCheck{
		Balance:    wallet.Balance,
		Sufficient: wallet.Balance.GreaterThanOrEqual(amount),
	}, nil
}

// ListTransactions returns the owner's ledger, newest first.
func (ws *WalletService) ListTransactions(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.WalletTransaction, error) {
	return ws.repo.GetTransactionsByOwner(ctx, ownerID, kind)
}

// ListPendingTransactions returns the admin review queue.
func (ws *WalletService) ListPendingTransactions(ctx context.Context) ([]models.WalletTransaction, error) {
	return ws.repo.GetPendingTransactions(ctx)
}

func walletEvent(t *models.WalletTransaction) models.WalletEvent {
	return models.WalletEvent{
		TransactionID: t.ID.String(),
		OwnerID:       t.OwnerID.String(),
		OwnerKind:     t.OwnerKind,
		Type:          t.Type,
		Status:        t.Status,
		Amount:        t.Amount.StringFixed(2),
	}
}
