package doctors

import (
	"context"
	"fmt"

	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/treestore"
)

const collectionPath = "doctors"

// TreeRepo reads and writes the doctors collection through the store
// boundary. The collection is single-level: doctorId → record.
type TreeRepo struct {
	store treestore.Store
}

func NewTreeRepo(store treestore.Store) *TreeRepo {
	return &TreeRepo{store: store}
}

func (r *TreeRepo) List(ctx context.Context) ([]*Doctor, error) {
	snap, err := r.store.SnapshotRead(ctx, collectionPath)
	if err != nil {
		return nil, fmt.Errorf("read doctors: %w", err)
	}

	records := flatten.Flat(snap.Value, recordDefaults())
	out := make([]*Doctor, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

func (r *TreeRepo) SetStatus(ctx context.Context, id string, status Status) error {
	return r.store.PartialWrite(ctx, collectionPath+"/"+id, map[string]any{
		"status": string(status),
	})
}
