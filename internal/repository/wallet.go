package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	walletColumns = `id, owner_id, owner_kind, balance, total_earnings, total_topups,
						total_spent, total_withdrawn, can_withdraw, created_at, updated_at`

	insertWalletQuery = `
						INSERT INTO wallets (id, owner_id, owner_kind)
						VALUES ($1, $2, $3)
						ON CONFLICT (owner_id, owner_kind) DO NOTHING
`
	selectWalletQuery = `
						SELECT ` + walletColumns + ` FROM wallets
						WHERE owner_id = $1 AND owner_kind = $2
`
	creditWalletQuery = `
						UPDATE wallets
						SET balance = balance + $1,
							total_earnings = total_earnings + $2,
							total_topups = total_topups + $3,
							updated_at = now()
						WHERE owner_id = $4 AND owner_kind = $5
`
	debitWalletQuery = `
						UPDATE wallets
						SET balance = balance - $1,
							total_spent = total_spent + $2,
							total_withdrawn = total_withdrawn + $3,
							updated_at = now()
						WHERE owner_id = $4 AND owner_kind = $5 AND balance >= $1
`
	insertTransactionQuery = `
						INSERT INTO wallet_transactions (id, owner_id, owner_kind, amount, type, status,
							description, related_order_id, admin_id, processed_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
						RETURNING created_at
`
	selectTransactionQuery = `
						SELECT id, owner_id, owner_kind, amount, type, status, description,
							related_order_id, admin_id, admin_notes, created_at, processed_at
						FROM wallet_transactions
						WHERE id = $1
`
	processTransactionQuery = `
						UPDATE wallet_transactions
						SET status = $1, admin_id = $2, admin_notes = $3, processed_at = $4
						WHERE id = $5 AND status = $6
						RETURNING id, owner_id, owner_kind, amount, type, status, description,
							related_order_id, admin_id, admin_notes, created_at, processed_at
`
	selectTransactionsByOwnerQuery = `
						SELECT id, owner_id, owner_kind, amount, type, status, description,
							related_order_id, admin_id, admin_notes, created_at, processed_at
						FROM wallet_transactions
						WHERE owner_id = $1 AND owner_kind = $2
						ORDER BY created_at DESC
`
	selectPendingTransactionsQuery = `
						SELECT id, owner_id, owner_kind, amount, type, status, description,
							related_order_id, admin_id, admin_notes, created_at, processed_at
						FROM wallet_transactions
						WHERE status = 'PENDING'
						ORDER BY created_at ASC
`
	reconcileBalancesQuery = `
						UPDATE wallets w
						SET balance = coalesce(t.approved_sum, 0), updated_at = now()
						FROM (
							SELECT owner_id, owner_kind, sum(amount) AS approved_sum
							FROM wallet_transactions
							WHERE status = 'APPROVED'
							GROUP BY owner_id, owner_kind
						) t
						WHERE w.owner_id = t.owner_id AND w.owner_kind = t.owner_kind
							AND w.balance <> coalesce(t.approved_sum, 0)
`
)

// WalletRepository implements wallet and ledger persistence on postgres
type WalletRepository struct {
	db *postgres.DB
}

// NewWalletRepository creates new WalletRepository instance
func NewWalletRepository(db *postgres.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func scanWallet(row rowScanner, w *models.Wallet) error {
	return row.Scan(
		&w.ID, &w.OwnerID, &w.OwnerKind, &w.Balance, &w.TotalEarnings,
		&w.TotalTopUps, &w.TotalSpent, &w.TotalWithdrawn, &w.CanWithdraw,
		&w.CreatedAt, &w.UpdatedAt,
	)
}

func scanTransaction(row rowScanner, t *models.WalletTransaction) error {
	return row.Scan(
		&t.ID, &t.OwnerID, &t.OwnerKind, &t.Amount, &t.Type, &t.Status,
		&t.Description, &t.RelatedOrderID, &t.AdminID, &t.AdminNotes,
		&t.CreatedAt, &t.ProcessedAt,
	)
}

// GetOrCreateWallet lazily creates the wallet on first access.
func (wr *WalletRepository) GetOrCreateWallet(ctx context.Context, ownerID uuid.UUID, kind string) (*models.Wallet, error) {
	if _, err := wr.db.Exec(ctx, insertWalletQuery, uuid.New(), ownerID, kind); err != nil {
		return nil, err
	}

	wallet := models.Wallet{}
	if err := scanWallet(wr.db.QueryRow(ctx, selectWalletQuery, ownerID, kind), &wallet); err != nil {
		return nil, err
	}

	return &wallet, nil
}

// GetWallet returns the wallet, ErrDataNotFound if it was never created.
func (wr *WalletRepository) GetWallet(ctx context.Context, ownerID uuid.UUID, kind string) (*models.Wallet, error) {
	wallet := models.Wallet{}
	err := scanWallet(wr.db.QueryRow(ctx, selectWalletQuery, ownerID, kind), &wallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &wallet, nil
}

// creditWalletTx increases balance inside tx. Earning and top-up
// aggregates are bumped by the matching aggregate argument.
func creditWalletTx(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, kind string, amount, earning, topup decimal.Decimal) error {
	if _, err := tx.Exec(ctx, insertWalletQuery, uuid.New(), ownerID, kind); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, creditWalletQuery, amount, earning, topup, ownerID, kind)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// debitWalletTx decreases balance inside tx, guarded against overdraft.
func debitWalletTx(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, kind string, amount, spent, withdrawn decimal.Decimal) error {
	cmd, err := tx.Exec(ctx, debitWalletQuery, amount, spent, withdrawn, ownerID, kind)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrInsufficientBalance
	}

	return nil
}

// insertTransactionTx appends a ledger line inside tx.
func insertTransactionTx(ctx context.Context, tx pgx.Tx, t *models.WalletTransaction) error {
	return tx.QueryRow(ctx, insertTransactionQuery,
		t.ID, t.OwnerID, t.OwnerKind, t.Amount, t.Type, t.Status,
		t.Description, t.RelatedOrderID, t.AdminID, t.ProcessedAt,
	).Scan(&t.CreatedAt)
}

// ApplyEarning credits the wallet and appends the approved ledger line
// in one transaction.
func (wr *WalletRepository) ApplyEarning(ctx context.Context, t *models.WalletTransaction) error {
	return wr.db.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := creditWalletTx(ctx, tx, t.OwnerID, t.OwnerKind, t.Amount, t.Amount, decimal.Zero); err != nil {
			return err
		}
		return insertTransactionTx(ctx, tx, t)
	})
}

// CreatePendingTransaction appends a PENDING ledger line without
// touching the balance. Top-up and withdrawal requests go through here.
func (wr *WalletRepository) CreatePendingTransaction(ctx context.Context, t *models.WalletTransaction) error {
	return wr.db.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertWalletQuery, uuid.New(), t.OwnerID, t.OwnerKind); err != nil {
			return err
		}
		return insertTransactionTx(ctx, tx, t)
	})
}

// GetTransactionByID returns a single ledger line.
func (wr *WalletRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.WalletTransaction, error) {
	t := models.WalletTransaction{}
	err := scanTransaction(wr.db.QueryRow(ctx, selectTransactionQuery, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &t, nil
}

// ProcessTransaction flips a PENDING transaction to the given terminal
// status and, on approval, applies the balance mutation matching the
// transaction type in the same transaction. A transaction that is no
// longer PENDING yields ErrAlreadyProcessed.
func (wr *WalletRepository) ProcessTransaction(ctx context.Context, id, adminID uuid.UUID, notes, newStatus string) (*models.WalletTransaction, error) {
	t := models.WalletTransaction{}

	err := wr.db.WithinTx(ctx, func(tx pgx.Tx) error {
		err := scanTransaction(tx.QueryRow(ctx, processTransactionQuery,
			newStatus, adminID, notes, time.Now(), id, models.TxStatusPending), &t)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// distinguish missing from already processed
				if _, lookupErr := lookupTransactionTx(ctx, tx, id); lookupErr != nil {
					return lookupErr
				}
				return models.ErrAlreadyProcessed
			}
			return err
		}

		if newStatus != models.TxStatusApproved {
			return nil
		}

		switch t.Type {
		case models.TxTypeTopUp:
			return creditWalletTx(ctx, tx, t.OwnerID, t.OwnerKind, t.Amount, decimal.Zero, t.Amount)
		case models.TxTypeWithdrawal:
			amount := t.Amount.Abs()
			return debitWalletTx(ctx, tx, t.OwnerID, t.OwnerKind, amount, decimal.Zero, amount)
		default:
			return models.ErrInvalidAmount
		}
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func lookupTransactionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.WalletTransaction, error) {
	t := models.WalletTransaction{}
	if err := scanTransaction(tx.QueryRow(ctx, selectTransactionQuery, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetTransactionsByOwner returns the owner's ledger, newest first.
func (wr *WalletRepository) GetTransactionsByOwner(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.WalletTransaction, error) {
	rows, err := wr.db.Query(ctx, selectTransactionsByOwnerQuery, ownerID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.WalletTransaction

	for rows.Next() {
		t := models.WalletTransaction{}
		if err := scanTransaction(rows, &t); err != nil {
			continue
		}
		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// GetPendingTransactions returns the admin review queue, oldest first.
func (wr *WalletRepository) GetPendingTransactions(ctx context.Context) ([]models.WalletTransaction, error) {
	rows, err := wr.db.Query(ctx, selectPendingTransactionsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.WalletTransaction

	for rows.Next() {
		t := models.WalletTransaction{}
		if err := scanTransaction(rows, &t); err != nil {
			continue
		}
		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ReconcileBalances rewrites any wallet balance that drifted from the
// sum of its approved ledger lines. Returns the number of corrected
// wallets.
func (wr *WalletRepository) ReconcileBalances(ctx context.Context) (int64, error) {
	cmd, err := wr.db.Exec(ctx, reconcileBalancesQuery)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}
