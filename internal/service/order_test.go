package service

import (
	"context"
	"testing"
	"time"

	"github.com/example/foodmart/config"
	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		GracePeriod:       60 * time.Second,
		RestaurantTimeout: 900 * time.Second,
		OfferTTL:          120 * time.Second,
		EstimatedPickup:   15 * time.Minute,
		Split: config.CommissionSplit{
			RestaurantRate:   decimal.RequireFromString("0.15"),
			DriverFeeShare:   decimal.RequireFromString("0.8"),
			PlatformFeeShare: decimal.RequireFromString("0.2"),
		},
	}
}

type orderRepoFake struct {
	createFn func(ctx context.Context, order *models.Order) (*models.Order, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	updateFn func(ctx context.Context, id uuid.UUID, from, to string) error
	acceptFn func(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error
}

func (f *orderRepoFake) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return f.createFn(ctx, order)
}
func (f *orderRepoFake) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return f.getFn(ctx, id)
}
func (f *orderRepoFake) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	return f.updateFn(ctx, id, from, to)
}
func (f *orderRepoFake) AcceptOrder(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error {
	return f.acceptFn(ctx, id, acceptedAt)
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "pending_to_accepted", from: models.OrderStatusPending, to: models.OrderStatusAccepted},
		{name: "pending_to_cancelled", from: models.OrderStatusPending, to: models.OrderStatusCancelled},
		{name: "accepted_to_preparing", from: models.OrderStatusAccepted, to: models.OrderStatusPreparing},
		{name: "preparing_to_ready", from: models.OrderStatusPreparing, to: models.OrderStatusReady},
		{name: "preparing_to_picked_up_fast_path", from: models.OrderStatusPreparing, to: models.OrderStatusPickedUp},
		{name: "ready_to_picked_up", from: models.OrderStatusReady, to: models.OrderStatusPickedUp},
		{name: "picked_up_to_delivering", from: models.OrderStatusPickedUp, to: models.OrderStatusDelivering},
		{name: "delivering_to_delivered", from: models.OrderStatusDelivering, to: models.OrderStatusDelivered},
		{name: "pending_to_preparing_rejected", from: models.OrderStatusPending, to: models.OrderStatusPreparing, wantErr: "invalid transition"},
		{name: "ready_to_delivering_rejected", from: models.OrderStatusReady, to: models.OrderStatusDelivering, wantErr: "invalid transition"},
		{name: "backward_rejected", from: models.OrderStatusReady, to: models.OrderStatusPreparing, wantErr: "invalid transition"},
		{name: "delivered_is_terminal", from: models.OrderStatusDelivered, to: models.OrderStatusPending, wantErr: "terminal"},
		{name: "cancelled_is_terminal", from: models.OrderStatusCancelled, to: models.OrderStatusAccepted, wantErr: "terminal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestComputeSplit(t *testing.T) {
	cfg := testConfig()

	// 210 subtotal + 40 fee, 15% commission, 80/20 fee share
	split := ComputeSplit(
		decimal.RequireFromString("210.00"),
		decimal.RequireFromString("40.00"),
		cfg.Split.RestaurantRate,
		cfg.Split,
	)

	assert.True(t, split.TotalPrice.Equal(decimal.RequireFromString("250.00")), "total %s", split.TotalPrice)
	assert.True(t, split.RestaurantCommission.Equal(decimal.RequireFromString("31.50")), "commission %s", split.RestaurantCommission)
	assert.True(t, split.DriverEarning.Equal(decimal.RequireFromString("32.00")), "driver %s", split.DriverEarning)
	assert.True(t, split.DeliveryCommission.Equal(decimal.RequireFromString("8.00")), "delivery commission %s", split.DeliveryCommission)
	assert.True(t, split.PlatformEarnings.Equal(decimal.RequireFromString("39.50")), "platform %s", split.PlatformEarnings)

	// restaurant net + driver + platform must equal total exactly
	restaurantNet := decimal.RequireFromString("210.00").Sub(split.RestaurantCommission)
	sum := restaurantNet.Add(split.DriverEarning).Add(split.PlatformEarnings)
	assert.True(t, sum.Equal(split.TotalPrice), "sum %s != total %s", sum, split.TotalPrice)
}

func TestComputeSplit_NoRoundingDrift(t *testing.T) {
	cfg := testConfig()

	// awkward amounts that round at two decimals
	subtotals := []string{"99.99", "0.01", "123.45", "10.10", "333.33"}
	fees := []string{"17.77", "5.55", "49.99", "0.01", "33.33"}

	for i := range subtotals {
		subtotal := decimal.RequireFromString(subtotals[i])
		fee := decimal.RequireFromString(fees[i])
		split := ComputeSplit(subtotal, fee, cfg.Split.RestaurantRate, cfg.Split)

		restaurantNet := subtotal.Sub(split.RestaurantCommission)
		sum := restaurantNet.Add(split.DriverEarning).Add(split.PlatformEarnings)
		assert.True(t, sum.Equal(split.TotalPrice),
			"subtotal=%s fee=%s: sum %s != total %s", subtotal, fee, sum, split.TotalPrice)
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	repo := &orderRepoFake{
		createFn: func(ctx context.Context, order *models.Order) (*models.Order, error) {
			order.CreatedAt = time.Now()
			return order, nil
		},
	}
	svc := NewOrderService(repo, testConfig(), notify.NopEmitter{}, zap.NewNop())

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderParams{
		CustomerID:    uuid.New(),
		RestaurantID:  uuid.New(),
		ItemsSubtotal: decimal.RequireFromString("210.00"),
		DeliveryFee:   decimal.RequireFromString("40.00"),
		PaymentMethod: models.PaymentMethodWallet,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, order.DriverEarning.Equal(decimal.RequireFromString("32.00")))

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderParams{
		ItemsSubtotal: decimal.RequireFromString("-1"),
		DeliveryFee:   decimal.Zero,
	})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestOrderService_AcceptByRestaurant(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name      string
		createdAt time.Time
		status    string
		wantErr   error
	}{
		{
			name:      "within_grace_period_blocked",
			createdAt: time.Now().Add(-30 * time.Second),
			status:    models.OrderStatusPending,
			wantErr:   models.ErrGracePeriodActive,
		},
		{
			name:      "after_timeout_blocked",
			createdAt: time.Now().Add(-20 * time.Minute),
			status:    models.OrderStatusPending,
			wantErr:   models.ErrRestaurantTimeout,
		},
		{
			name:      "inside_window_accepted",
			createdAt: time.Now().Add(-5 * time.Minute),
			status:    models.OrderStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &orderRepoFake{
				getFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
					return &models.Order{ID: orderID, Status: tt.status, CreatedAt: tt.createdAt}, nil
				},
				acceptFn: func(ctx context.Context, id uuid.UUID, acceptedAt time.Time) error {
					return nil
				},
			}
			svc := NewOrderService(repo, testConfig(), notify.NopEmitter{}, zap.NewNop())

			order, err := svc.AcceptByRestaurant(context.Background(), orderID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusAccepted, order.Status)
			assert.NotNil(t, order.AcceptedAt)
		})
	}
}

func TestOrderService_Transition_RejectsEscrowOwnedEdges(t *testing.T) {
	repo := &orderRepoFake{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: id, Status: models.OrderStatusDelivering, CreatedAt: time.Now()}, nil
		},
	}
	svc := NewOrderService(repo, testConfig(), notify.NopEmitter{}, zap.NewNop())

	// DELIVERED settles through escrow release, not the plain transition
	_, err := svc.Transition(context.Background(), uuid.New(), models.OrderStatusDelivered)

	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.OrderStatusDelivered, invalid.To)
}
