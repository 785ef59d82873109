package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	escrowHoldQuery = `
						UPDATE orders
						SET payment_status = 'ESCROWED'
						WHERE id = $1 AND payment_status = 'PENDING'
`
	cancelOrderQuery = `
						UPDATE orders
						SET status = 'CANCELLED', payment_status = 'REFUNDED',
							restaurant_commission = 0, delivery_commission = 0,
							platform_earnings = 0, driver_earning = 0,
							requires_manual_processing = $1
						WHERE id = $2
							AND status NOT IN ('DELIVERED', 'CANCELLED')
							AND payment_status IN ('PENDING', 'ESCROWED')
`
	releaseOrderQuery = `
						UPDATE orders
						SET status = 'DELIVERED', payment_status = 'PAID', delivered_at = $1
						WHERE id = $2 AND driver_id = $3
							AND status = 'DELIVERING' AND payment_status = 'ESCROWED'
`
	completeAssignmentQuery = `
						UPDATE assignments
						SET status = 'COMPLETED'
						WHERE order_id = $1 AND driver_id = $2 AND status = 'ACCEPTED'
`
)

// EscrowRepository owns the multi-statement financial units: hold,
// refund and release. Each method is a single transaction; partial
// application is impossible.
type EscrowRepository struct {
	db *postgres.DB
}

// NewEscrowRepository creates new EscrowRepository instance
func NewEscrowRepository(db *postgres.DB) *EscrowRepository {
	return &EscrowRepository{db: db}
}

// HoldFunds debits the customer wallet for the order total and
// advances payment status PENDING -> ESCROWED atomically.
func (er *EscrowRepository) HoldFunds(ctx context.Context, order *models.Order) error {
	return er.db.WithinTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, escrowHoldQuery, order.ID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrInvalidPaymentState
		}

		if err := debitWalletTx(ctx, tx, order.CustomerID, models.OwnerKindCustomer,
			order.TotalPrice, order.TotalPrice, decimal.Zero); err != nil {
			return err
		}

		return insertTransactionTx(ctx, tx, &models.WalletTransaction{
			ID:             uuid.New(),
			OwnerID:        order.CustomerID,
			OwnerKind:      models.OwnerKindCustomer,
			Amount:         order.TotalPrice.Neg(),
			Type:           models.TxTypeOrderPayment,
			Status:         models.TxStatusApproved,
			Description:    fmt.Sprintf("payment for order %s", order.ID),
			RelatedOrderID: &order.ID,
			ProcessedAt:    ptrTime(time.Now()),
		})
	})
}

// CancelWithRefund cancels the order, zeroes its earnings fields and,
// when refundToWallet is set, returns the full total to the customer
// wallet in the same transaction.
func (er *EscrowRepository) CancelWithRefund(ctx context.Context, order *models.Order, reason string, refundToWallet, manualProcessing bool) error {
	return er.db.WithinTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, cancelOrderQuery, manualProcessing, order.ID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrConflictData
		}

		if !refundToWallet {
			return nil
		}

		if err := creditWalletTx(ctx, tx, order.CustomerID, models.OwnerKindCustomer,
			order.TotalPrice, decimal.Zero, decimal.Zero); err != nil {
			return err
		}

		return insertTransactionTx(ctx, tx, &models.WalletTransaction{
			ID:             uuid.New(),
			OwnerID:        order.CustomerID,
			OwnerKind:      models.OwnerKindCustomer,
			Amount:         order.TotalPrice,
			Type:           models.TxTypeRefund,
			Status:         models.TxStatusApproved,
			Description:    fmt.Sprintf("refund for order %s: %s", order.ID, reason),
			RelatedOrderID: &order.ID,
			ProcessedAt:    ptrTime(time.Now()),
		})
	})
}

// ReleaseOnDelivery settles an escrowed order: marks it delivered and
// paid, credits the restaurant net of commission (recorded as gross
// earning plus commission deduction), credits the driver, and
// completes the driver assignment. One transaction; any failure
// leaves the order ESCROWED for retry.
func (er *EscrowRepository) ReleaseOnDelivery(ctx context.Context, order *models.Order, driverID uuid.UUID, deliveredAt time.Time) error {
	return er.db.WithinTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, releaseOrderQuery, deliveredAt, order.ID, driverID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrInvalidPaymentState
		}

		restaurantNet := order.RestaurantEarning()

		if err := creditWalletTx(ctx, tx, order.RestaurantID, models.OwnerKindRestaurant,
			restaurantNet, restaurantNet, decimal.Zero); err != nil {
			return err
		}

		// gross earning and commission deduction as two linked lines
		if err := insertTransactionTx(ctx, tx, &models.WalletTransaction{
			ID:             uuid.New(),
			OwnerID:        order.RestaurantID,
			OwnerKind:      models.OwnerKindRestaurant,
			Amount:         order.ItemsSubtotal,
			Type:           models.TxTypeEarning,
			Status:         models.TxStatusApproved,
			Description:    fmt.Sprintf("earning for order %s", order.ID),
			RelatedOrderID: &order.ID,
			ProcessedAt:    ptrTime(deliveredAt),
		}); err != nil {
			return err
		}
		if err := insertTransactionTx(ctx, tx, &models.WalletTransaction{
			ID:             uuid.New(),
			OwnerID:        order.RestaurantID,
			OwnerKind:      models.OwnerKindRestaurant,
			Amount:         order.RestaurantCommission.Neg(),
			Type:           models.TxTypeCommissionDeduction,
			Status:         models.TxStatusApproved,
			Description:    fmt.Sprintf("platform commission for order %s", order.ID),
			RelatedOrderID: &order.ID,
			ProcessedAt:    ptrTime(deliveredAt),
		}); err != nil {
			return err
		}

		if err := creditWalletTx(ctx, tx, driverID, models.OwnerKindDriver,
			order.DriverEarning, order.DriverEarning, decimal.Zero); err != nil {
			return err
		}

		if err := insertTransactionTx(ctx, tx, &models.WalletTransaction{
			ID:             uuid.New(),
			OwnerID:        driverID,
			OwnerKind:      models.OwnerKindDriver,
			Amount:         order.DriverEarning,
			Type:           models.TxTypeEarning,
			Status:         models.TxStatusApproved,
			Description:    fmt.Sprintf("delivery earning for order %s", order.ID),
			RelatedOrderID: &order.ID,
			ProcessedAt:    ptrTime(deliveredAt),
		}); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, completeAssignmentQuery, order.ID, driverID)
		return err
	})
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
