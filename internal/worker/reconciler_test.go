package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentStoreFake struct {
	expireStaleFn func(ctx context.Context, cutoff time.Time) (int64, error)
	expireAllFn   func(ctx context.Context) (int64, error)
	deleteOldFn   func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (f *assignmentStoreFake) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.expireStaleFn(ctx, cutoff)
}
func (f *assignmentStoreFake) ExpireAllOpen(ctx context.Context) (int64, error) {
	return f.expireAllFn(ctx)
}
func (f *assignmentStoreFake) DeleteOldTerminal(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.deleteOldFn(ctx, cutoff)
}

type driverStateStoreFake struct {
	markOfflineFn func(ctx context.Context, cutoff time.Time) (int64, error)
	syncCountsFn  func(ctx context.Context) (int64, error)
}

func (f *driverStateStoreFake) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.markOfflineFn(ctx, cutoff)
}
func (f *driverStateStoreFake) SyncActiveCounts(ctx context.Context) (int64, error) {
	return f.syncCountsFn(ctx)
}

type walletStoreFake struct {
	reconcileFn func(ctx context.Context) (int64, error)
}

func (f *walletStoreFake) ReconcileBalances(ctx context.Context) (int64, error) {
	return f.reconcileFn(ctx)
}

func testReconcilerConfig() Config {
	return Config{
		Interval:         time.Minute,
		ExpiryBuffer:     30 * time.Second,
		AssignmentMaxAge: 24 * time.Hour,
		OfflineThreshold: 10 * time.Minute,
	}
}

func TestReconciler_SweepRunsEveryTask(t *testing.T) {
	calls := map[string]int{}

	assignments := &assignmentStoreFake{
		expireStaleFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			calls["expire_stale"]++
			assert.True(t, cutoff.Before(time.Now()), "cutoff must lag now by the buffer")
			return 2, nil
		},
		deleteOldFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			calls["delete_old"]++
			assert.True(t, time.Since(cutoff) > 23*time.Hour, "retention cutoff must be about a day back")
			return 0, nil
		},
	}
	drivers := &driverStateStoreFake{
		markOfflineFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			calls["mark_offline"]++
			return 1, nil
		},
		syncCountsFn: func(ctx context.Context) (int64, error) {
			calls["sync_counts"]++
			return 3, nil
		},
	}
	wallets := &walletStoreFake{
		reconcileFn: func(ctx context.Context) (int64, error) {
			calls["reconcile"]++
			return 0, nil
		},
	}

	r := NewReconciler(assignments, drivers, wallets, testReconcilerConfig())
	r.Sweep(context.Background())

	for _, task := range []string{"expire_stale", "delete_old", "mark_offline", "sync_counts", "reconcile"} {
		assert.Equal(t, 1, calls[task], "task %s", task)
	}
}

func TestReconciler_SweepContinuesAfterTaskFailure(t *testing.T) {
	var reconciled bool

	assignments := &assignmentStoreFake{
		expireStaleFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
		deleteOldFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	drivers := &driverStateStoreFake{
		markOfflineFn: func(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil },
		syncCountsFn:  func(ctx context.Context) (int64, error) { return 0, nil },
	}
	wallets := &walletStoreFake{
		reconcileFn: func(ctx context.Context) (int64, error) {
			reconciled = true
			return 0, nil
		},
	}

	r := NewReconciler(assignments, drivers, wallets, testReconcilerConfig())
	r.Sweep(context.Background())

	assert.True(t, reconciled, "later tasks must still run after an earlier failure")
}

func TestReconciler_EmergencyCleanup(t *testing.T) {
	var order []string

	assignments := &assignmentStoreFake{
		expireAllFn: func(ctx context.Context) (int64, error) {
			order = append(order, "expire_all")
			return 5, nil
		},
	}
	drivers := &driverStateStoreFake{
		markOfflineFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			order = append(order, "mark_offline")
			return 2, nil
		},
		syncCountsFn: func(ctx context.Context) (int64, error) {
			order = append(order, "sync_counts")
			return 4, nil
		},
	}
	wallets := &walletStoreFake{}

	r := NewReconciler(assignments, drivers, wallets, testReconcilerConfig())
	require.NoError(t, r.EmergencyCleanup(context.Background()))

	// counts are re-derived after offers are expired, never zeroed
	assert.Equal(t, []string{"expire_all", "mark_offline", "sync_counts"}, order)
}

func TestReconciler_EmergencyCleanupStopsOnError(t *testing.T) {
	var synced bool

	assignments := &assignmentStoreFake{
		expireAllFn: func(ctx context.Context) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	drivers := &driverStateStoreFake{
		markOfflineFn: func(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil },
		syncCountsFn: func(ctx context.Context) (int64, error) {
			synced = true
			return 0, nil
		},
	}

	r := NewReconciler(assignments, drivers, &walletStoreFake{}, testReconcilerConfig())

	err := r.EmergencyCleanup(context.Background())
	require.Error(t, err)
	assert.False(t, synced, "cleanup must not sync counts after a failed expiry")
}

func TestReconciler_RunStopsOnContextCancel(t *testing.T) {
	cfg := testReconcilerConfig()
	cfg.Interval = 10 * time.Millisecond

	assignments := &assignmentStoreFake{
		expireStaleFn: func(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil },
		deleteOldFn:   func(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil },
	}
	drivers := &driverStateStoreFake{
		markOfflineFn: func(ctx context.Context, cutoff time.Time) (int64, error) { return 0, nil },
		syncCountsFn:  func(ctx context.Context) (int64, error) { return 0, nil },
	}
	wallets := &walletStoreFake{
		reconcileFn: func(ctx context.Context) (int64, error) { return 0, nil },
	}

	r := NewReconciler(assignments, drivers, wallets, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancel")
	}
}
