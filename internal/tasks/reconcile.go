// package tasks contains the engine reconciling provider search results
// with locally stored catalog rows
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/resonate/internal/models"
)

// MusicStore is the subset of the catalog repository the engine needs.
type MusicStore interface {
	// StoredByIDs returns the stored rows whose music_id is in ids.
	StoredByIDs(ctx context.Context, ids []string) ([]models.Music, error)

	// InsertMissing inserts only rows not already stored and returns the
	// rows actually written.
	InsertMissing(ctx context.Context, items []models.Music) ([]models.Music, error)
}

// ReconcileEngine merges provider search results with the local catalog:
// already-stored entries are returned from storage, new entries are
// persisted and returned in provider ranking order.
type ReconcileEngine struct {
	store MusicStore
}

// NewReconcileEngine creates a new ReconcileEngine over the given store
func NewReconcileEngine(store MusicStore) *ReconcileEngine {
	return &ReconcileEngine{store: store}
}

// Partition splits provider results into the overlap (stored rows whose id
// appears in results) and the difference (results not yet stored, in
// provider order).
func Partition(stored, results []models.Music) (overlap, difference []models.Music) {
	resultIDs := make(map[string]struct{}, len(results))
	for _, item := range results {
		resultIDs[item.MusicID] = struct{}{}
	}

	storedIDs := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		storedIDs[item.MusicID] = struct{}{}
		if _, ok := resultIDs[item.MusicID]; ok {
			overlap = append(overlap, item)
		}
	}

	for _, item := range results {
		if _, ok := storedIDs[item.MusicID]; !ok {
			difference = append(difference, item)
		}
	}

	return overlap, difference
}

// Reconcile persists the subset of provider results not yet stored and
// returns every logical record exactly once: the stored row for the overlap,
// the newly inserted rows for the difference.
//
// A concurrent reconciliation of the same query can win the insert race for
// some rows; those rows come back from a follow-up read instead of being
// silently dropped.
func (e *ReconcileEngine) Reconcile(ctx context.Context, results []models.Music) ([]models.Music, error) {
	if len(results) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(results))
	for _, item := range results {
		ids = append(ids, item.MusicID)
	}

	stored, err := e.store.StoredByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored rows: %w", err)
	}

	overlap, difference := Partition(stored, results)
	if len(difference) == 0 {
		return overlap, nil
	}

	inserted, err := e.store.InsertMissing(ctx, difference)
	if err != nil {
		return nil, fmt.Errorf("failed to persist new rows: %w", err)
	}

	merged := append(overlap, inserted...)

	if len(inserted) < len(difference) {
		lost := raceLostIDs(difference, inserted)
		recovered, err := e.store.StoredByIDs(ctx, lost)
		if err != nil {
			return nil, fmt.Errorf("failed to recover race-lost rows: %w", err)
		}
		merged = append(merged, recovered...)
	}

	return merged, nil
}

// raceLostIDs returns the ids in difference that are absent from inserted.
func raceLostIDs(difference, inserted []models.Music) []string {
	insertedIDs := make(map[string]struct{}, len(inserted))
	for _, item := range inserted {
		insertedIDs[item.MusicID] = struct{}{}
	}

	var lost []string
	for _, item := range difference {
		if _, ok := insertedIDs[item.MusicID]; !ok {
			lost = append(lost, item.MusicID)
		}
	}
	return lost
}
