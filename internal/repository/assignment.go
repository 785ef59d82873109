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
	assignmentColumns = `id, order_id, driver_id, status, wave, offered_at, expires_at, responded_at, accepted_at`

	insertAssignmentQuery = `
						INSERT INTO assignments (id, order_id, driver_id, status, wave, offered_at, expires_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	selectAssignmentByIDQuery = `
						SELECT ` + assignmentColumns + ` FROM assignments
						WHERE id = $1
`
	selectOpenOfferQuery = `
						SELECT ` + assignmentColumns + ` FROM assignments
						WHERE order_id = $1 AND driver_id = $2 AND status = 'OFFERED'
						ORDER BY wave DESC
						LIMIT 1
`
	selectMaxWaveQuery = `
						SELECT coalesce(max(wave), 0) FROM assignments
						WHERE order_id = $1
`
	acceptOfferQuery = `
						UPDATE assignments
						SET status = 'ACCEPTED', responded_at = $1, accepted_at = $1
						WHERE id = $2 AND status = 'OFFERED'
`
	respondOfferQuery = `
						UPDATE assignments
						SET status = $1, responded_at = $2
						WHERE id = $3 AND status = 'OFFERED'
`
	expireStaleQuery = `
						UPDATE assignments
						SET status = 'EXPIRED', responded_at = now()
						WHERE status = 'OFFERED' AND expires_at < $1
`
	expireAllOpenQuery = `
						UPDATE assignments
						SET status = 'EXPIRED', responded_at = now()
						WHERE status = 'OFFERED'
`
	deleteOldTerminalQuery = `
						DELETE FROM assignments
						WHERE status IN ('EXPIRED', 'DECLINED', 'COMPLETED') AND offered_at < $1
`
	countAcceptedByDriverQuery = `
						SELECT count(*) FROM assignments
						WHERE driver_id = $1 AND status = 'ACCEPTED'
`
)

// AssignmentRepository implements assignment persistence on postgres
type AssignmentRepository struct {
	db *postgres.DB
}

// NewAssignmentRepository creates new AssignmentRepository instance
func NewAssignmentRepository(db *postgres.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func scanAssignment(row rowScanner, a *models.Assignment) error {
	return row.Scan(
		&a.ID, &a.OrderID, &a.DriverID, &a.Status, &a.Wave,
		&a.OfferedAt, &a.ExpiresAt, &a.RespondedAt, &a.AcceptedAt,
	)
}

// CreateOffers inserts one OFFERED row per driver for the wave.
func (ar *AssignmentRepository) CreateOffers(ctx context.Context, offers []models.Assignment) error {
	batch := &pgx.Batch{}
	for _, offer := range offers {
		batch.Queue(insertAssignmentQuery,
			offer.ID, offer.OrderID, offer.DriverID, offer.Status,
			offer.Wave, offer.OfferedAt, offer.ExpiresAt)
	}

	return ar.db.SendBatch(ctx, batch).Close()
}

// GetAssignmentByID returns assignment by id
func (ar *AssignmentRepository) GetAssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	a := models.Assignment{}
	err := scanAssignment(ar.db.QueryRow(ctx, selectAssignmentByIDQuery, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &a, nil
}

// GetOpenOffer returns the newest OFFERED assignment for the pair.
func (ar *AssignmentRepository) GetOpenOffer(ctx context.Context, orderID, driverID uuid.UUID) (*models.Assignment, error) {
	a := models.Assignment{}
	err := scanAssignment(ar.db.QueryRow(ctx, selectOpenOfferQuery, orderID, driverID), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &a, nil
}

// GetMaxWave returns the highest wave number recorded for the order,
// zero when no offers exist yet.
func (ar *AssignmentRepository) GetMaxWave(ctx context.Context, orderID uuid.UUID) (int, error) {
	var wave int
	if err := ar.db.QueryRow(ctx, selectMaxWaveQuery, orderID).Scan(&wave); err != nil {
		return 0, err
	}

	return wave, nil
}

// MarkAccepted flips the offer OFFERED -> ACCEPTED.
func (ar *AssignmentRepository) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmd, err := ar.db.Exec(ctx, acceptOfferQuery, at, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrConflictData
	}

	return nil
}

// MarkResponded flips the offer OFFERED -> DECLINED or EXPIRED.
func (ar *AssignmentRepository) MarkResponded(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	cmd, err := ar.db.Exec(ctx, respondOfferQuery, status, at, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrConflictData
	}

	return nil
}

// ExpireStale bulk-expires offers whose deadline passed before cutoff.
func (ar *AssignmentRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := ar.db.Exec(ctx, expireStaleQuery, cutoff)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// ExpireAllOpen force-expires every open offer. Disaster recovery only.
func (ar *AssignmentRepository) ExpireAllOpen(ctx context.Context) (int64, error) {
	cmd, err := ar.db.Exec(ctx, expireAllOpenQuery)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// DeleteOldTerminal purges terminal rows older than cutoff.
func (ar *AssignmentRepository) DeleteOldTerminal(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := ar.db.Exec(ctx, deleteOldTerminalQuery, cutoff)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// CountAcceptedByDriver returns the authoritative accepted count.
func (ar *AssignmentRepository) CountAcceptedByDriver(ctx context.Context, driverID uuid.UUID) (int, error) {
	var count int
	if err := ar.db.QueryRow(ctx, countAcceptedByDriverQuery, driverID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
