package appointments

import (
	"context"
	"fmt"

	"github.com/clinops/console/internal/platform/flatten"
	"github.com/clinops/console/internal/platform/treestore"
)

const collectionPath = "appointments"

// TreeRepo reads and writes appointments through the store boundary.
// The collection is two-level: patientId → appointmentId → record.
type TreeRepo struct {
	store treestore.Store
}

func NewTreeRepo(store treestore.Store) *TreeRepo {
	return &TreeRepo{store: store}
}

func (r *TreeRepo) List(ctx context.Context) ([]*Appointment, error) {
	snap, err := r.store.SnapshotRead(ctx, collectionPath)
	if err != nil {
		return nil, fmt.Errorf("read appointments: %w", err)
	}

	records := flatten.Nested(snap.Value, recordDefaults())
	out := make([]*Appointment, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

func (r *TreeRepo) SetStatus(ctx context.Context, patientID, id string, status Status) error {
	return r.store.PartialWrite(ctx, collectionPath+"/"+patientID+"/"+id, map[string]any{
		"status": string(status),
	})
}
