package patients

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinops/console/internal/domain/appointments"
)

// AppointmentSource supplies the flattened appointment book the
// directory is joined against. appointments.Service satisfies it.
type AppointmentSource interface {
	List(ctx context.Context) []*appointments.Appointment
}

type Service struct {
	repo  Repository
	appts AppointmentSource
	log   zerolog.Logger
}

func NewService(repo Repository, appts AppointmentSource, log zerolog.Logger) *Service {
	return &Service{repo: repo, appts: appts, log: log}
}

// List returns the patient directory with per-patient appointment
// counts and display names resolved. A name missing on the user record
// falls back to the patient name on that user's first appointment,
// then to the Unknown User literal. A read failure on the users
// collection is logged and degrades to an empty directory.
func (s *Service) List(ctx context.Context) []*Patient {
	directory, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("users read failed, treating collection as empty")
		return []*Patient{}
	}

	counts := map[string]int{}
	firstName := map[string]string{}
	for _, a := range s.appts.List(ctx) {
		counts[a.PatientID]++
		if _, seen := firstName[a.PatientID]; !seen {
			firstName[a.PatientID] = a.PatientName
		}
	}

	for _, p := range directory {
		if p.Name == "" {
			if n := firstName[p.ID]; n != "" {
				p.Name = n
			} else {
				p.Name = UnknownName
			}
		}
		p.AppointmentCount = counts[p.ID]
	}
	return directory
}
