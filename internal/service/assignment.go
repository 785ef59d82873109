package service

import (
	"context"
	"errors"
	"time"

	"github.com/example/foodmart/config"
	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/example/foodmart/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentRepository is interface for interacting with assignment data
type AssignmentRepository interface {
	// CreateOffers inserts one OFFERED row per driver
	CreateOffers(ctx context.Context, offers []models.Assignment) error
	// GetAssignmentByID returns assignment by id
	GetAssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	// GetOpenOffer returns the newest OFFERED row for the pair
	GetOpenOffer(ctx context.Context, orderID, driverID uuid.UUID) (*models.Assignment, error)
	// GetMaxWave returns the highest recorded wave for the order
	GetMaxWave(ctx context.Context, orderID uuid.UUID) (int, error)
	// MarkAccepted flips the offer OFFERED -> ACCEPTED
	MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkResponded flips the offer OFFERED -> DECLINED or EXPIRED
	MarkResponded(ctx context.Context, id uuid.UUID, status string, at time.Time) error
}

// assignmentOrderRepository is the order surface the coordinator needs.
type assignmentOrderRepository interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	AssignDriver(ctx context.Context, id, driverID uuid.UUID, estimatedPickup time.Time) error
}

// AssignmentService implements wave-based driver assignment
type AssignmentService struct {
	repo    AssignmentRepository
	orders  assignmentOrderRepository
	cfg     *config.Config
	emitter notify.Emitter
	logger  *zap.Logger
}

// NewAssignmentService creates new AssignmentService instance
func NewAssignmentService(repo AssignmentRepository, orders assignmentOrderRepository, cfg *config.Config, emitter notify.Emitter, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		repo:    repo,
		orders:  orders,
		cfg:     cfg,
		emitter: emitter,
		logger:  logger,
	}
}

// OfferAssignment records one offer per driver for the wave. Wave
// numbers may not go backward for an order; the pool that produced
// driverIDs is the caller's concern.
func (as *AssignmentService) OfferAssignment(ctx context.Context, orderID uuid.UUID, driverIDs []uuid.UUID, wave int, ttl time.Duration) ([]models.Assignment, error) {
	if wave < 1 || len(driverIDs) == 0 {
		return nil, models.ErrInvalidAmount
	}
	if ttl <= 0 {
		ttl = as.cfg.OfferTTL
	}

	order, err := as.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DriverID != nil {
		return nil, models.ErrAssignmentConflict
	}

	maxWave, err := as.repo.GetMaxWave(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if wave < maxWave {
		return nil, models.ErrConflictData
	}

	now := time.Now()
	offers := make([]models.Assignment, 0, len(driverIDs))
	for _, driverID := range driverIDs {
		offers = append(offers, models.Assignment{
			ID:        uuid.New(),
			OrderID:   orderID,
			DriverID:  driverID,
			Status:    models.AssignmentStatusOffered,
			Wave:      wave,
			OfferedAt: now,
			ExpiresAt: now.Add(ttl),
		})
	}

	if err := as.repo.CreateOffers(ctx, offers); err != nil {
		return nil, err
	}

	for i := range offers {
		as.emitter.Emit(models.EventAssignmentOffered, assignmentEvent(&offers[i]))
	}

	return offers, nil
}

// AcceptAssignment binds the driver to the order through a single
// conditional update. Losing the race returns ErrAssignmentConflict;
// the caller may retry with the next driver. Other open offers for the
// order are left for the reconciler to expire.
func (as *AssignmentService) AcceptAssignment(ctx context.Context, orderID, driverID uuid.UUID) (*models.Assignment, error) {
	offer, err := as.repo.GetOpenOffer(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if now.After(offer.ExpiresAt) {
		return nil, models.ErrAssignmentConflict
	}

	err = as.orders.AssignDriver(ctx, orderID, driverID, now.Add(as.cfg.EstimatedPickup))
	if err != nil {
		if errors.Is(err, models.ErrAssignmentConflict) {
			observability.AssignmentConflicts.Inc()
		}
		return nil, err
	}

	if err := as.repo.MarkAccepted(ctx, offer.ID, now); err != nil {
		// order-side binding already won; the offer row is repaired by
		// the reconciler if this races with expiry
		as.logger.Warn("mark offer accepted", zap.String("assignment", offer.ID.String()), zap.Error(err))
	}

	offer.Status = models.AssignmentStatusAccepted
	offer.RespondedAt = &now
	offer.AcceptedAt = &now

	observability.AssignmentsAccepted.Inc()
	as.emitter.Emit(models.EventAssignmentAccepted, assignmentEvent(offer))

	return offer, nil
}

// DeclineAssignment records a driver's refusal.
func (as *AssignmentService) DeclineAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	return as.repo.MarkResponded(ctx, assignmentID, models.AssignmentStatusDeclined, time.Now())
}

// ExpireAssignment force-expires a single open offer.
func (as *AssignmentService) ExpireAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	return as.repo.MarkResponded(ctx, assignmentID, models.AssignmentStatusExpired, time.Now())
}

func assignmentEvent(a *models.Assignment) models.AssignmentEvent {
	return models.AssignmentEvent{
		AssignmentID: a.ID.String(),
		OrderID:      a.OrderID.String(),
		DriverID:     a.DriverID.String(),
		Status:       a.Status,
		Wave:         a.Wave,
	}
}
