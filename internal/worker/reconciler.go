// Package worker runs the maintenance reconciler: a timer-driven
// actor that repairs drift the request path can leave behind. It
// talks to the store only through conditional bulk updates, so every
// sweep is idempotent and safe against live traffic.
package worker

import (
	"context"
	"time"

	"github.com/example/foodmart/internal/logger"
	"github.com/example/foodmart/internal/observability"
	"go.uber.org/zap"
)

// AssignmentStore is the assignment sweep surface.
type AssignmentStore interface {
	// ExpireStale bulk-expires offers past their deadline
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
	// ExpireAllOpen force-expires every open offer
	ExpireAllOpen(ctx context.Context) (int64, error)
	// DeleteOldTerminal purges terminal rows older than cutoff
	DeleteOldTerminal(ctx context.Context, cutoff time.Time) (int64, error)
}

// DriverStateStore is the driver presence sweep surface.
type DriverStateStore interface {
	// MarkStaleOffline flips drivers without a recent heartbeat offline
	MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error)
	// SyncActiveCounts re-derives cached accepted counts
	SyncActiveCounts(ctx context.Context) (int64, error)
}

// WalletStore is the ledger sweep surface.
type WalletStore interface {
	// ReconcileBalances corrects balances that drifted from the ledger
	ReconcileBalances(ctx context.Context) (int64, error)
}

// Config holds the reconciler sweep thresholds.
type Config struct {
	Interval         time.Duration
	ExpiryBuffer     time.Duration
	AssignmentMaxAge time.Duration
	OfflineThreshold time.Duration
}

// Reconciler is the maintenance sweep loop.
type Reconciler struct {
	assignments AssignmentStore
	drivers     DriverStateStore
	wallets     WalletStore
	cfg         Config
}

// NewReconciler creates new Reconciler instance
func NewReconciler(assignments AssignmentStore, drivers DriverStateStore, wallets WalletStore, cfg Config) *Reconciler {
	return &Reconciler{
		assignments: assignments,
		drivers:     drivers,
		wallets:     wallets,
		cfg:         cfg,
	}
}

// Run executes sweeps on the configured interval until ctx is done.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("reconciler is done")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs every maintenance task once. Failures are logged and
// retried on the next tick; they never surface to request handlers.
func (r *Reconciler) Sweep(ctx context.Context) {
	r.runTask(ctx, "expired_assignments", r.CleanupExpiredAssignments)
	r.runTask(ctx, "old_assignments", r.CleanupOldAssignments)
	r.runTask(ctx, "stale_drivers", r.UpdateStaleDriverStates)
	r.runTask(ctx, "driver_counts", r.ValidateActiveAssignmentCounts)
	r.runTask(ctx, "wallet_balances", r.ValidateWalletBalances)
}

func (r *Reconciler) runTask(ctx context.Context, name string, task func(ctx context.Context) (int64, error)) {
	rows, err := task(ctx)
	if err != nil {
		observability.ReconcilerErrors.WithLabelValues(name).Inc()
		logger.Log.Error("reconciler task failed", zap.String("task", name), zap.Error(err))
		return
	}

	observability.ReconcilerSweeps.WithLabelValues(name).Add(float64(rows))
	if rows > 0 {
		logger.Log.Info("reconciler task corrected rows", zap.String("task", name), zap.Int64("rows", rows))
	}
}

// CleanupExpiredAssignments expires OFFERED rows whose deadline plus
// buffer has passed.
func (r *Reconciler) CleanupExpiredAssignments(ctx context.Context) (int64, error) {
	return r.assignments.ExpireStale(ctx, time.Now().Add(-r.cfg.ExpiryBuffer))
}

// CleanupOldAssignments purges terminal rows past the retention window.
func (r *Reconciler) CleanupOldAssignments(ctx context.Context) (int64, error) {
	return r.assignments.DeleteOldTerminal(ctx, time.Now().Add(-r.cfg.AssignmentMaxAge))
}

// UpdateStaleDriverStates marks drivers offline after missed heartbeats.
func (r *Reconciler) UpdateStaleDriverStates(ctx context.Context) (int64, error) {
	return r.drivers.MarkStaleOffline(ctx, time.Now().Add(-r.cfg.OfflineThreshold))
}

// ValidateActiveAssignmentCounts re-derives cached accepted counts
// from the assignments table and creates missing state rows.
func (r *Reconciler) ValidateActiveAssignmentCounts(ctx context.Context) (int64, error) {
	return r.drivers.SyncActiveCounts(ctx)
}

// ValidateWalletBalances corrects any balance that drifted from the
// sum of its approved ledger lines.
func (r *Reconciler) ValidateWalletBalances(ctx context.Context) (int64, error) {
	return r.wallets.ReconcileBalances(ctx)
}

// EmergencyCleanup is the operator-invoked recovery path: it expires
// every open offer, flips stale drivers offline and re-derives the
// cached counts from accepted assignments instead of zeroing them.
func (r *Reconciler) EmergencyCleanup(ctx context.Context) error {
	expired, err := r.assignments.ExpireAllOpen(ctx)
	if err != nil {
		return err
	}

	offline, err := r.drivers.MarkStaleOffline(ctx, time.Now().Add(-r.cfg.OfflineThreshold))
	if err != nil {
		return err
	}

	corrected, err := r.drivers.SyncActiveCounts(ctx)
	if err != nil {
		return err
	}

	logger.Log.Warn("emergency cleanup done",
		zap.Int64("expired_offers", expired),
		zap.Int64("drivers_offline", offline),
		zap.Int64("counts_corrected", corrected))

	return nil
}
