package appointments

import (
	"context"
	"reflect"
	"testing"

	"github.com/clinops/console/internal/platform/treestore"
)

func TestTreeRepo_FlattensOwnerNesting(t *testing.T) {
	store := treestore.NewMemoryStore()
	ctx := context.Background()
	_ = store.PartialWrite(ctx, "appointments/u1/a1", map[string]any{
		"doctor": "Dr. Smith", "name": "Rosa Alvarez", "dateIso": "2025-03-10",
	})
	_ = store.PartialWrite(ctx, "appointments/u1/a2", map[string]any{
		"doctor": "Dr. Jones", "name": "Rosa Alvarez", "status": "confirmed",
	})
	_ = store.PartialWrite(ctx, "appointments/u2/a1", map[string]any{
		"doctor": "Dr. Patel", "name": "Kenji Tanaka",
	})

	repo := NewTreeRepo(store)
	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// Identity carries the owner; defaults fill the absent status.
	if got[0].PatientID != "u1" || got[0].ID != "a1" {
		t.Errorf("first record identity = %s/%s", got[0].PatientID, got[0].ID)
	}
	if got[0].Status != StatusPending {
		t.Errorf("absent status = %s, want pending", got[0].Status)
	}
	if got[1].Status != StatusConfirmed {
		t.Errorf("authored status = %s, want confirmed", got[1].Status)
	}
	if got[2].PatientID != "u2" || got[2].ID != "a1" {
		t.Errorf("third record identity = %s/%s", got[2].PatientID, got[2].ID)
	}
}

func TestTreeRepo_EmptyCollection(t *testing.T) {
	repo := NewTreeRepo(treestore.NewMemoryStore())
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestNextStatuses_ConsoleTransitions(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusConfirmed, StatusCancelled}},
		{StatusConfirmed, []Status{StatusCancelled}},
		{StatusCompleted, []Status{}},
		{StatusCancelled, []Status{}},
	}
	for _, tt := range tests {
		if got := NextStatuses(tt.from); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NextStatuses(%s) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestFilter_SearchesDoctorAndPatientNames(t *testing.T) {
	b := []*Appointment{
		{ID: "a1", PatientID: "u1", DoctorName: "Dr. Smith", PatientName: "Rosa Alvarez", Status: StatusPending},
		{ID: "a2", PatientID: "u1", DoctorName: "Dr. Jones", PatientName: "Rosa Alvarez", Status: StatusConfirmed},
		{ID: "a3", PatientID: "u2", DoctorName: "Dr. Smith", PatientName: "Kenji Tanaka", Status: StatusCancelled},
	}

	if got := Filter(b, "", "All"); len(got) != 3 {
		t.Errorf("identity filter len = %d", len(got))
	}
	if got := Filter(b, "smith", "All"); len(got) != 2 {
		t.Errorf("doctor-name filter len = %d", len(got))
	}
	if got := Filter(b, "tanaka", "All"); len(got) != 1 || got[0].ID != "a3" {
		t.Errorf("patient-name filter = %v", got)
	}
	if got := Filter(b, "", "confirmed"); len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("status filter = %v", got)
	}
}
