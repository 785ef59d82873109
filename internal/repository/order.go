package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	orderColumns = `id, customer_id, restaurant_id, driver_id, status, payment_status, payment_method,
						items_subtotal, delivery_fee, total_price, restaurant_commission, delivery_commission,
						platform_earnings, driver_earning, requires_manual_processing,
						created_at, accepted_at, delivered_at, estimated_pickup_time`

	insertOrderQuery = `
						INSERT INTO orders (id, customer_id, restaurant_id, status, payment_status, payment_method,
							items_subtotal, delivery_fee, total_price, restaurant_commission, delivery_commission,
							platform_earnings, driver_earning)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
						RETURNING created_at
`
	selectOrderByIDQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE id = $1
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1
						WHERE id = $2 AND status = $3
`
	acceptOrderQuery = `
						UPDATE orders
						SET status = $1, accepted_at = $2
						WHERE id = $3 AND status = $4 AND accepted_at IS NULL
`
	assignDriverQuery = `
						UPDATE orders
						SET driver_id = $1, estimated_pickup_time = $2
						WHERE id = $3 AND driver_id IS NULL AND status IN ($4, $5)
`
	markEscrowedQuery = `
						UPDATE orders
						SET payment_status = $1
						WHERE id = $2 AND payment_status = $3
`
)

// OrderRepository implements order persistence on postgres
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, order *models.Order) error {
	return row.Scan(
		&order.ID, &order.CustomerID, &order.RestaurantID, &order.DriverID,
		&order.Status, &order.PaymentStatus, &order.PaymentMethod,
		&order.ItemsSubtotal, &order.DeliveryFee, &order.TotalPrice,
		&order.RestaurantCommission, &order.DeliveryCommission,
		&order.PlatformEarnings, &order.DriverEarning, &order.RequiresManualProcessing,
		&order.CreatedAt, &order.AcceptedAt, &order.DeliveredAt, &order.EstimatedPickupTime,
	)
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.QueryRow(ctx, insertOrderQuery,
		order.ID, order.CustomerID, order.RestaurantID, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.ItemsSubtotal, order.DeliveryFee, order.TotalPrice, order.RestaurantCommission,
		order.DeliveryCommission, order.PlatformEarnings, order.DriverEarning,
	).Scan(&order.CreatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == postgres.ErrCodeUniqueViolation {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	err := scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus moves order from one status to another. The update
// is conditional on the current status; losing the race returns
// ErrConflictData.
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, to, id, from)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrConflictData
	}

	return nil
}

// AcceptOrder marks a pending, not yet accepted order as accepted by
// the restaurant.
func (or *OrderRepository) AcceptOrder(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error {
	cmd, err := or.db.Exec(ctx, acceptOrderQuery, models.OrderStatusAccepted, acceptedAt, id, models.OrderStatusPending)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrConflictData
	}

	return nil
}

// AssignDriver binds a driver to the order only if no driver holds it
// and the order is still assignable. Zero affected rows means another
// driver won the race.
func (or *OrderRepository) AssignDriver(ctx context.Context, id, driverID uuid.UUID, estimatedPickup time.Time) error {
	cmd, err := or.db.Exec(ctx, assignDriverQuery, driverID, estimatedPickup, id,
		models.OrderStatusPreparing, models.OrderStatusReady)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrAssignmentConflict
	}

	return nil
}

// MarkEscrowed advances payment status PENDING -> ESCROWED without a
// wallet debit. Used for externally captured payment methods.
func (or *OrderRepository) MarkEscrowed(ctx context.Context, id uuid.UUID) error {
	cmd, err := or.db.Exec(ctx, markEscrowedQuery, models.PaymentStatusEscrowed, id, models.PaymentStatusPending)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrInvalidPaymentState
	}

	return nil
}
