package appointments

import "context"

// Repository loads the owner-nested appointments collection and
// writes lifecycle transitions back to the store.
type Repository interface {
	List(ctx context.Context) ([]*Appointment, error)
	SetStatus(ctx context.Context, patientID, id string, status Status) error
}
