package appointments

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

// List returns every appointment across all patients, flattened. A
// read failure is logged and degrades to an empty book.
func (s *Service) List(ctx context.Context) []*Appointment {
	book, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("appointments read failed, treating collection as empty")
		return []*Appointment{}
	}
	return book
}

// SetStatus writes the transition to the store at the appointment's
// exact (patient, appointment) coordinate, then patches the matching
// book entry. On any error the book is left exactly as it was. Same
// rules as the doctor lifecycle: valid enum values are accepted
// unconditionally, concurrent updates to one record are not
// serialized, and the last write to land wins.
func (s *Service) SetStatus(ctx context.Context, book []*Appointment, patientID, id string, next Status) error {
	if !validStatuses[next] {
		return fmt.Errorf("invalid appointment status: %s", next)
	}

	if err := s.repo.SetStatus(ctx, patientID, id, next); err != nil {
		return fmt.Errorf("update appointment %s/%s: %w", patientID, id, err)
	}

	for _, a := range book {
		if a.PatientID == patientID && a.ID == id {
			a.Status = next
			break
		}
	}

	s.log.Info().
		Str("patient_id", patientID).
		Str("appointment_id", id).
		Str("status", string(next)).
		Msg("appointment status updated")
	return nil
}
