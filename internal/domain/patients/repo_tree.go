package patients

import (
	"context"
	"fmt"

	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/treestore"
)

const collectionPath = "users"

// TreeRepo reads the users collection through the store boundary.
type TreeRepo struct {
	store treestore.Store
}

func NewTreeRepo(store treestore.Store) *TreeRepo {
	return &TreeRepo{store: store}
}

func (r *TreeRepo) List(ctx context.Context) ([]*Patient, error) {
	snap, err := r.store.SnapshotRead(ctx, collectionPath)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	records := flatten.Flat(snap.Value, nil)
	out := make([]*Patient, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}
