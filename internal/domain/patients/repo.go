package patients

import "context"

// Repository loads the users collection. The console never writes it.
type Repository interface {
	List(ctx context.Context) ([]*Patient, error)
}
