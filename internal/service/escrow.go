package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/foodmart/config"
	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/example/foodmart/internal/observability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EscrowRepository is interface for the atomic financial units
type EscrowRepository interface {
	// HoldFunds debits the customer wallet and escrows the payment
	HoldFunds(ctx context.Context, order *models.Order) error
	// CancelWithRefund cancels the order, optionally refunding the wallet
	CancelWithRefund(ctx context.Context, order *models.Order, reason string, refundToWallet, manualProcessing bool) error
	// ReleaseOnDelivery settles an escrowed order across all payees
	ReleaseOnDelivery(ctx context.Context, order *models.Order, driverID uuid.UUID, deliveredAt time.Time) error
}

// escrowOrderRepository is the order read/write surface the escrow
// engine needs.
type escrowOrderRepository interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	MarkEscrowed(ctx context.Context, id uuid.UUID) error
}

// BalanceChecker is the pre-flight wallet gate. It is advisory: the
// hold transaction re-checks the balance atomically.
type BalanceChecker interface {
	CheckSufficientBalance(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (models.BalanceCheck, error)
}

// EscrowService implements the order payment state machine
type EscrowService struct {
	orders  escrowOrderRepository
	escrow  EscrowRepository
	wallet  BalanceChecker
	cfg     *config.Config
	emitter notify.Emitter
	logger  *zap.Logger
}

// NewEscrowService creates new EscrowService instance
func NewEscrowService(orders escrowOrderRepository, escrow EscrowRepository, wallet BalanceChecker, cfg *config.Config, emitter notify.Emitter, logger *zap.Logger) *EscrowService {
	return &EscrowService{
		orders:  orders,
		escrow:  escrow,
		wallet:  wallet,
		cfg:     cfg,
		emitter: emitter,
		logger:  logger,
	}
}

// EvaluateCancellation decides whether the order may still be
// cancelled at the given instant. Evaluation order matters: the free
// window wins over everything, terminal orders refuse, accepted
// orders refuse, and a still-pending order may always cancel.
func EvaluateCancellation(order *models.Order, now time.Time, gracePeriod, restaurantTimeout time.Duration) models.CancelCheck {
	age := order.Age(now)

	if age < gracePeriod {
		return models.CancelCheck{
			CanCancel: true,
			Reason:    models.CancelReasonFreeWindow,
			Message:   "order is within the free cancellation window",
		}
	}

	if order.IsTerminal() || order.PaymentStatus == models.PaymentStatusPaid || order.PaymentStatus == models.PaymentStatusRefunded {
		return models.CancelCheck{
			CanCancel: false,
			Reason:    models.CancelReasonCompleted,
			Message:   "order is already completed or cancelled",
		}
	}

	if order.AcceptedAt != nil || order.Status != models.OrderStatusPending {
		return models.CancelCheck{
			CanCancel: false,
			Reason:    models.CancelReasonAccepted,
			Message:   "restaurant has accepted the order",
		}
	}

	if age > restaurantTimeout {
		return models.CancelCheck{
			CanCancel: true,
			Reason:    models.CancelReasonRestaurantTimeout,
			Message:   "restaurant did not accept the order in time",
		}
	}

	return models.CancelCheck{
		CanCancel: true,
		Reason:    models.CancelReasonBeforeAcceptance,
		Message:   "order is not yet accepted by the restaurant",
	}
}

// EvaluateTimeout reports whether the restaurant acceptance window
// has expired for a still-pending order.
func EvaluateTimeout(order *models.Order, now time.Time, restaurantTimeout time.Duration) models.TimeoutCheck {
	age := order.Age(now)
	timedOut := age > restaurantTimeout &&
		order.Status == models.OrderStatusPending &&
		order.AcceptedAt == nil

	return models.TimeoutCheck{HasTimedOut: timedOut, Age: age}
}

// CanCancel returns the cancellation verdict for the order.
func (es *EscrowService) CanCancel(ctx context.Context, orderID uuid.UUID) (models.CancelCheck, error) {
	order, err := es.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return models.CancelCheck{}, err
	}

	return EvaluateCancellation(order, time.Now(), es.cfg.GracePeriod, es.cfg.RestaurantTimeout), nil
}

// ProcessEscrowPayment moves funds into hold. Wallet orders debit the
// customer wallet; external payment methods escrow directly.
func (es *EscrowService) ProcessEscrowPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := es.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, models.ErrInvalidPaymentState
	}

	if order.PaymentMethod == models.PaymentMethodWallet {
		check, err := es.wallet.CheckSufficientBalance(ctx, order.CustomerID, models.OwnerKindCustomer, order.TotalPrice)
		if err != nil {
			return nil, err
		}
		if !check.Sufficient {
			return nil, models.ErrInsufficientBalance
		}

		if err := es.escrow.HoldFunds(ctx, order); err != nil {
			return nil, err
		}
	} else {
		// external capture assumed authorized
		if err := es.orders.MarkEscrowed(ctx, orderID); err != nil {
			return nil, err
		}
	}

	order.PaymentStatus = models.PaymentStatusEscrowed

	observability.EscrowHoldsTotal.Inc()
	es.emitter.Emit(models.EventOrderEscrowed, orderEvent(order, ""))

	return order, nil
}

// CancelOrderWithRefund re-validates eligibility and cancels the
// order. Escrowed wallet payments are refunded in the same atomic
// unit; externally captured payments are flagged for manual refund.
func (es *EscrowService) CancelOrderWithRefund(ctx context.Context, orderID uuid.UUID, reason string) (*models.Order, error) {
	order, err := es.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	check := EvaluateCancellation(order, time.Now(), es.cfg.GracePeriod, es.cfg.RestaurantTimeout)
	if !check.CanCancel {
		return nil, fmt.Errorf("%w: %s", models.ErrCancellationRejected, check.Message)
	}

	if reason == "" {
		reason = check.Reason
	}

	escrowed := order.PaymentStatus == models.PaymentStatusEscrowed
	refundToWallet := escrowed && order.PaymentMethod == models.PaymentMethodWallet
	manualProcessing := escrowed && order.PaymentMethod != models.PaymentMethodWallet

	if err := es.escrow.CancelWithRefund(ctx, order, reason, refundToWallet, manualProcessing); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	order.PaymentStatus = models.PaymentStatusRefunded
	order.RequiresManualProcessing = manualProcessing

	observability.RefundsTotal.Inc()
	es.emitter.Emit(models.EventOrderCancelled, orderEvent(order, reason))

	return order, nil
}

// ReleaseEscrowOnDelivery settles the order on delivery completion.
func (es *EscrowService) ReleaseEscrowOnDelivery(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	order, err := es.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus != models.PaymentStatusEscrowed {
		return nil, models.ErrInvalidPaymentState
	}
	if order.DriverID == nil || *order.DriverID != driverID {
		return nil, models.ErrAssignmentConflict
	}

	now := time.Now()
	if err := es.escrow.ReleaseOnDelivery(ctx, order, driverID, now); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusDelivered
	order.PaymentStatus = models.PaymentStatusPaid
	order.DeliveredAt = &now

	observability.EscrowReleasesTotal.Inc()
	es.emitter.Emit(models.EventOrderDelivered, orderEvent(order, ""))

	return order, nil
}

// CheckRestaurantTimeout returns the timeout verdict for the order.
func (es *EscrowService) CheckRestaurantTimeout(ctx context.Context, orderID uuid.UUID) (models.TimeoutCheck, error) {
	order, err := es.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return models.TimeoutCheck{}, err
	}

	return EvaluateTimeout(order, time.Now(), es.cfg.RestaurantTimeout), nil
}

// ProcessTimeoutRefund cancels and refunds an order whose restaurant
// acceptance window expired.
func (es *EscrowService) ProcessTimeoutRefund(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	check, err := es.CheckRestaurantTimeout(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !check.HasTimedOut {
		return nil, fmt.Errorf("%w: restaurant acceptance window has not expired", models.ErrCancellationRejected)
	}

	return es.CancelOrderWithRefund(ctx, orderID, models.CancelReasonRestaurantTimeout)
}
