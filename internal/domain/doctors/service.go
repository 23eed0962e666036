package doctors

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns every application in the collection. A read failure is
// logged and degrades to an empty roster so list views and the
// dashboard keep working with zero records.
func (s *Service) List(ctx context.Context) []*Doctor {
	roster, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("doctors read failed, treating collection as empty")
		return []*Doctor{}
	}
	return roster
}

// SetStatus writes the approval decision to the store and, only after
// the write is confirmed, patches the matching roster entry's status
// in place. On any error the roster is left exactly as it was.
//
// Two operators deciding on the same application are not serialized:
// the last write to land wins, both at the store and in whichever
// roster its caller holds.
func (s *Service) SetStatus(ctx context.Context, roster []*Doctor, id string, next Status) error {
	if !validStatuses[next] {
		return fmt.Errorf("invalid doctor status: %s", next)
	}

	if err := s.repo.SetStatus(ctx, id, next); err != nil {
		return fmt.Errorf("update doctor %s: %w", id, err)
	}

	for _, d := range roster {
		if d.ID == id {
			d.Status = next
			break
		}
	}

	s.log.Info().Str("doctor_id", id).Str("status", string(next)).Msg("doctor status updated")
	return nil
}
