package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// assignmentRepoFake keeps offers in memory with the same conditional
// status flips as the database layer.
type assignmentRepoFake struct {
	mu     sync.Mutex
	offers map[uuid.UUID]*models.Assignment
}

func newAssignmentRepoFake() *assignmentRepoFake {
	return &assignmentRepoFake{offers: make(map[uuid.UUID]*models.Assignment)}
}

func (f *assignmentRepoFake) CreateOffers(ctx context.Context, offers []models.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range offers {
		offer := offers[i]
		f.offers[offer.ID] = &offer
	}
	return nil
}

func (f *assignmentRepoFake) GetAssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *offer
	return &cp, nil
}

func (f *assignmentRepoFake) GetOpenOffer(ctx context.Context, orderID, driverID uuid.UUID) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, offer := range f.offers {
		if offer.OrderID == orderID && offer.DriverID == driverID && offer.Status == models.AssignmentStatusOffered {
			cp := *offer
			return &cp, nil
		}
	}
	return nil, models.ErrDataNotFound
}

func (f *assignmentRepoFake) GetMaxWave(ctx context.Context, orderID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	max := 0
	for _, offer := range f.offers {
		if offer.OrderID == orderID && offer.Wave > max {
			max = offer.Wave
		}
	}
	return max, nil
}

func (f *assignmentRepoFake) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok || offer.Status != models.AssignmentStatusOffered {
		return models.ErrConflictData
	}
	offer.Status = models.AssignmentStatusAccepted
	offer.RespondedAt = &at
	offer.AcceptedAt = &at
	return nil
}

func (f *assignmentRepoFake) MarkResponded(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok || offer.Status != models.AssignmentStatusOffered {
		return models.ErrConflictData
	}
	offer.Status = status
	offer.RespondedAt = &at
	return nil
}

// assignmentOrderFake emulates the conditional driver binding: the
// update succeeds only while driver_id is still unset.
type assignmentOrderFake struct {
	mu    sync.Mutex
	order *models.Order
}

func (f *assignmentOrderFake) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *f.order
	return &cp, nil
}

func (f *assignmentOrderFake) AssignDriver(ctx context.Context, id, driverID uuid.UUID, estimatedPickup time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.DriverID != nil {
		return models.ErrAssignmentConflict
	}
	if f.order.Status != models.OrderStatusPreparing && f.order.Status != models.OrderStatusReady {
		return models.ErrAssignmentConflict
	}

	d := driverID
	f.order.DriverID = &d
	f.order.EstimatedPickupTime = &estimatedPickup
	return nil
}

func newAssignmentFixture(t *testing.T, status string) (*AssignmentService, *assignmentRepoFake, *assignmentOrderFake) {
	t.Helper()

	repo := newAssignmentRepoFake()
	orders := &assignmentOrderFake{
		order: &models.Order{
			ID:            uuid.New(),
			Status:        status,
			PaymentStatus: models.PaymentStatusEscrowed,
			CreatedAt:     time.Now().Add(-10 * time.Minute),
		},
	}
	svc := NewAssignmentService(repo, orders, testConfig(), notify.NopEmitter{}, zap.NewNop())
	return svc, repo, orders
}

func TestAssignmentService_OfferAssignment(t *testing.T) {
	svc, _, orders := newAssignmentFixture(t, models.OrderStatusPreparing)
	drivers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	offers, err := svc.OfferAssignment(context.Background(), orders.order.ID, drivers, 1, 0)
	require.NoError(t, err)
	require.Len(t, offers, 3)

	for _, offer := range offers {
		assert.Equal(t, models.AssignmentStatusOffered, offer.Status)
		assert.Equal(t, 1, offer.Wave)
		assert.True(t, offer.ExpiresAt.After(offer.OfferedAt))
	}

	// wave numbers must not go backward
	_, err = svc.OfferAssignment(context.Background(), orders.order.ID, drivers, 2, 0)
	require.NoError(t, err)
	_, err = svc.OfferAssignment(context.Background(), orders.order.ID, drivers, 1, 0)
	assert.ErrorIs(t, err, models.ErrConflictData)

	// wave zero is invalid
	_, err = svc.OfferAssignment(context.Background(), orders.order.ID, drivers, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestAssignmentService_OfferAssignment_AlreadyAssigned(t *testing.T) {
	svc, _, orders := newAssignmentFixture(t, models.OrderStatusPreparing)
	bound := uuid.New()
	orders.order.DriverID = &bound

	_, err := svc.OfferAssignment(context.Background(), orders.order.ID, []uuid.UUID{uuid.New()}, 1, 0)
	assert.ErrorIs(t, err, models.ErrAssignmentConflict)
}

func TestAssignmentService_AcceptAssignment(t *testing.T) {
	svc, _, orders := newAssignmentFixture(t, models.OrderStatusReady)
	driverID := uuid.New()

	_, err := svc.OfferAssignment(context.Background(), orders.order.ID, []uuid.UUID{driverID}, 1, 0)
	require.NoError(t, err)

	offer, err := svc.AcceptAssignment(context.Background(), orders.order.ID, driverID)
	require.NoError(t, err)

	assert.Equal(t, models.AssignmentStatusAccepted, offer.Status)
	assert.NotNil(t, offer.AcceptedAt)
	require.NotNil(t, orders.order.DriverID)
	assert.Equal(t, driverID, *orders.order.DriverID)
	assert.NotNil(t, orders.order.EstimatedPickupTime)
}

func TestAssignmentService_AcceptAssignment_ExpiredOffer(t *testing.T) {
	svc, repo, orders := newAssignmentFixture(t, models.OrderStatusReady)
	driverID := uuid.New()

	now := time.Now()
	require.NoError(t, repo.CreateOffers(context.Background(), []models.Assignment{{
		ID:        uuid.New(),
		OrderID:   orders.order.ID,
		DriverID:  driverID,
		Status:    models.AssignmentStatusOffered,
		Wave:      1,
		OfferedAt: now.Add(-5 * time.Minute),
		ExpiresAt: now.Add(-3 * time.Minute),
	}}))

	_, err := svc.AcceptAssignment(context.Background(), orders.order.ID, driverID)
	assert.ErrorIs(t, err, models.ErrAssignmentConflict)
	assert.Nil(t, orders.order.DriverID)
}

func TestAssignmentService_AcceptAssignment_SingleWinner(t *testing.T) {
	svc, _, orders := newAssignmentFixture(t, models.OrderStatusPreparing)

	drivers := make([]uuid.UUID, 8)
	for i := range drivers {
		drivers[i] = uuid.New()
	}
	_, err := svc.OfferAssignment(context.Background(), orders.order.ID, drivers, 1, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, len(drivers))

	for _, driverID := range drivers {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.AcceptAssignment(context.Background(), orders.order.ID, id)
			results <- err
		}(driverID)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, models.ErrAssignmentConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "exactly one driver may win the order")
	assert.Equal(t, len(drivers)-1, conflicts)
	require.NotNil(t, orders.order.DriverID)
}

func TestAssignmentService_DeclineAssignment(t *testing.T) {
	svc, repo, orders := newAssignmentFixture(t, models.OrderStatusPreparing)
	driverID := uuid.New()

	offers, err := svc.OfferAssignment(context.Background(), orders.order.ID, []uuid.UUID{driverID}, 1, 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeclineAssignment(context.Background(), offers[0].ID))

	stored, err := repo.GetAssignmentByID(context.Background(), offers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusDeclined, stored.Status)

	// a declined offer is no longer acceptable
	_, err = svc.AcceptAssignment(context.Background(), orders.order.ID, driverID)
	assert.ErrorIs(t, err, models.ErrDataNotFound)
}
