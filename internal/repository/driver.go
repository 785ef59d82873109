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
	upsertHeartbeatQuery = `
						INSERT INTO driver_states (driver_id, is_online, online_since, last_heartbeat_at)
						VALUES ($1, TRUE, $2, $2)
						ON CONFLICT (driver_id) DO UPDATE
						SET is_online = TRUE,
							online_since = coalesce(driver_states.online_since, $2),
							last_heartbeat_at = $2
`
	selectDriverStateQuery = `
						SELECT driver_id, is_online, online_since, active_assignments_count, last_heartbeat_at
						FROM driver_states
						WHERE driver_id = $1
`
	markStaleOfflineQuery = `
						UPDATE driver_states
						SET is_online = FALSE, online_since = NULL
						WHERE is_online = TRUE AND last_heartbeat_at < $1
`
	syncActiveCountsQuery = `
						UPDATE driver_states ds
						SET active_assignments_count = coalesce(a.accepted, 0)
						FROM (
							SELECT driver_id, count(*) AS accepted
							FROM assignments
							WHERE status = 'ACCEPTED'
							GROUP BY driver_id
						) a
						WHERE ds.driver_id = a.driver_id
							AND ds.active_assignments_count <> coalesce(a.accepted, 0)
`
	zeroOrphanCountsQuery = `
						UPDATE driver_states ds
						SET active_assignments_count = 0
						WHERE ds.active_assignments_count <> 0
							AND NOT EXISTS (
								SELECT 1 FROM assignments a
								WHERE a.driver_id = ds.driver_id AND a.status = 'ACCEPTED'
							)
`
	insertMissingStatesQuery = `
						INSERT INTO driver_states (driver_id, is_online, active_assignments_count, last_heartbeat_at)
						SELECT a.driver_id, FALSE, count(*), now()
						FROM assignments a
						WHERE a.status = 'ACCEPTED'
							AND NOT EXISTS (SELECT 1 FROM driver_states ds WHERE ds.driver_id = a.driver_id)
						GROUP BY a.driver_id
`
)

// DriverStateRepository implements driver presence persistence on postgres
type DriverStateRepository struct {
	db *postgres.DB
}

// NewDriverStateRepository creates new DriverStateRepository instance
func NewDriverStateRepository(db *postgres.DB) *DriverStateRepository {
	return &DriverStateRepository{db: db}
}

// RecordHeartbeat marks the driver online and stamps the heartbeat.
func (dr *DriverStateRepository) RecordHeartbeat(ctx context.Context, driverID uuid.UUID, at time.Time) error {
	_, err := dr.db.Exec(ctx, upsertHeartbeatQuery, driverID, at)
	return err
}

// GetDriverState returns the driver presence row.
func (dr *DriverStateRepository) GetDriverState(ctx context.Context, driverID uuid.UUID) (*models.DriverState, error) {
	ds := models.DriverState{}
	err := dr.db.QueryRow(ctx, selectDriverStateQuery, driverID).Scan(
		&ds.DriverID, &ds.IsOnline, &ds.OnlineSince, &ds.ActiveAssignmentsCount, &ds.LastHeartbeatAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &ds, nil
}

// MarkStaleOffline flips drivers without a recent heartbeat offline.
func (dr *DriverStateRepository) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := dr.db.Exec(ctx, markStaleOfflineQuery, cutoff)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// SyncActiveCounts re-derives cached accepted-assignment counts from
// the assignments table and creates missing state rows for drivers
// that hold accepted assignments. Returns the number of corrected rows.
func (dr *DriverStateRepository) SyncActiveCounts(ctx context.Context) (int64, error) {
	var corrected int64

	cmd, err := dr.db.Exec(ctx, syncActiveCountsQuery)
	if err != nil {
		return 0, err
	}
	corrected += cmd.RowsAffected()

	cmd, err = dr.db.Exec(ctx, zeroOrphanCountsQuery)
	if err != nil {
		return corrected, err
	}
	corrected += cmd.RowsAffected()

	cmd, err = dr.db.Exec(ctx, insertMissingStatesQuery)
	if err != nil {
		return corrected, err
	}
	corrected += cmd.RowsAffected()

	return corrected, nil
}
