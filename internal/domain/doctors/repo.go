package doctors

import "context"

// Repository loads the doctors collection and writes approval
// decisions back to the store.
type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)
	SetStatus(ctx context.Context, id string, status Status) error
}
