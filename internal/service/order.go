package service

import (
	"context"
	"time"

	"github.com/example/foodmart/config"
	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/example/foodmart/internal/observability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderTransitions is the lifecycle DAG. A status missing from the map
// is terminal.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusAccepted, models.OrderStatusCancelled},
	models.OrderStatusAccepted:   {models.OrderStatusPreparing},
	models.OrderStatusPreparing:  {models.OrderStatusReady, models.OrderStatusPickedUp},
	models.OrderStatusReady:      {models.OrderStatusPickedUp},
	models.OrderStatusPickedUp:   {models.OrderStatusDelivering},
	models.OrderStatusDelivering: {models.OrderStatusDelivered},
}

// ValidateTransition checks a single lifecycle edge. Terminal statuses
// reject every transition.
func ValidateTransition(from, to string) error {
	allowed, ok := orderTransitions[from]
	if !ok {
		return &models.OrderTerminalError{Status: from}
	}

	for _, status := range allowed {
		if status == to {
			return nil
		}
	}

	return &models.InvalidTransitionError{From: from, To: to}
}

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateOrderStatus conditionally moves order between statuses
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to string) error
	// AcceptOrder marks a pending order accepted by the restaurant
	AcceptOrder(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error
}

// OrderService implements the order lifecycle
type OrderService struct {
	repo    OrderRepository
	cfg     *config.Config
	emitter notify.Emitter
	logger  *zap.Logger
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, cfg *config.Config, emitter notify.Emitter, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:    repo,
		cfg:     cfg,
		emitter: emitter,
		logger:  logger,
	}
}

// MoneySplit is the canonical commission breakdown computed once at
// checkout and stored on the order.
type MoneySplit struct {
	TotalPrice           decimal.Decimal
	RestaurantCommission decimal.Decimal
	DeliveryCommission   decimal.Decimal
	DriverEarning        decimal.Decimal
	PlatformEarnings     decimal.Decimal
}

// ComputeSplit derives the money split from the subtotal and delivery
// fee. The delivery commission is the fee remainder after the driver
// share so the three payouts always sum to the total exactly.
func ComputeSplit(itemsSubtotal, deliveryFee, commissionRate decimal.Decimal, split config.CommissionSplit) MoneySplit {
	restaurantCommission := itemsSubtotal.Mul(commissionRate).Round(2)
	driverEarning := deliveryFee.Mul(split.DriverFeeShare).Round(2)
	deliveryCommission := deliveryFee.Sub(driverEarning)

	return MoneySplit{
		TotalPrice:           itemsSubtotal.Add(deliveryFee),
		RestaurantCommission: restaurantCommission,
		DeliveryCommission:   deliveryCommission,
		DriverEarning:        driverEarning,
		PlatformEarnings:     restaurantCommission.Add(deliveryCommission),
	}
}

// PlaceOrderParams is the checkout command
type PlaceOrderParams struct {
	CustomerID     uuid.UUID
	RestaurantID   uuid.UUID
	ItemsSubtotal  decimal.Decimal
	DeliveryFee    decimal.Decimal
	PaymentMethod  string
	CommissionRate decimal.Decimal // zero means platform default
}

// PlaceOrder creates a PENDING order with its money split precomputed.
func (os *OrderService) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*models.Order, error) {
	if params.ItemsSubtotal.IsNegative() || params.DeliveryFee.IsNegative() {
		return nil, models.ErrInvalidAmount
	}

	rate := params.CommissionRate
	if rate.IsZero() {
		rate = os.cfg.Split.RestaurantRate
	}

	split := ComputeSplit(params.ItemsSubtotal, params.DeliveryFee, rate, os.cfg.Split)

	order := &models.Order{
		ID:                   uuid.New(),
		CustomerID:           params.CustomerID,
		RestaurantID:         params.RestaurantID,
		Status:               models.OrderStatusPending,
		PaymentStatus:        models.PaymentStatusPending,
		PaymentMethod:        params.PaymentMethod,
		ItemsSubtotal:        params.ItemsSubtotal,
		DeliveryFee:          params.DeliveryFee,
		TotalPrice:           split.TotalPrice,
		RestaurantCommission: split.RestaurantCommission,
		DeliveryCommission:   split.DeliveryCommission,
		PlatformEarnings:     split.PlatformEarnings,
		DriverEarning:        split.DriverEarning,
	}

	order, err := os.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	observability.OrdersPlacedTotal.Inc()
	os.emitter.Emit(models.EventOrderPlaced, orderEvent(order, ""))

	return order, nil
}

// GetOrder returns order by id
func (os *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return os.repo.GetOrderByID(ctx, id)
}

// AcceptByRestaurant moves PENDING -> ACCEPTED, gated by the grace
// period and the restaurant timeout.
func (os *OrderService) AcceptByRestaurant(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(order.Status, models.OrderStatusAccepted); err != nil {
		return nil, err
	}

	now := time.Now()
	age := order.Age(now)

	if age < os.cfg.GracePeriod {
		return nil, models.ErrGracePeriodActive
	}
	if age > os.cfg.RestaurantTimeout {
		return nil, models.ErrRestaurantTimeout
	}

	if err := os.repo.AcceptOrder(ctx, id, now); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusAccepted
	order.AcceptedAt = &now

	os.emitter.Emit(models.EventOrderAccepted, orderEvent(order, ""))

	return order, nil
}

// Transition applies a single forward lifecycle edge. DELIVERED and
// CANCELLED are not reachable here: delivery settles through the
// escrow release and cancellation through the refund path.
func (os *OrderService) Transition(ctx context.Context, id uuid.UUID, to string) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if to == models.OrderStatusDelivered || to == models.OrderStatusCancelled {
		return nil, &models.InvalidTransitionError{From: order.Status, To: to}
	}

	if err := ValidateTransition(order.Status, to); err != nil {
		return nil, err
	}

	if err := os.repo.UpdateOrderStatus(ctx, id, order.Status, to); err != nil {
		return nil, err
	}

	order.Status = to

	os.emitter.Emit(models.EventOrderStatusChanged, orderEvent(order, ""))

	return order, nil
}

func orderEvent(order *models.Order, reason string) models.OrderEvent {
	ev := models.OrderEvent{
		OrderID:       order.ID.String(),
		CustomerID:    order.CustomerID.String(),
		RestaurantID:  order.RestaurantID.String(),
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Reason:        reason,
	}
	if order.DriverID != nil {
		ev.DriverID = order.DriverID.String()
	}
	return ev
}
