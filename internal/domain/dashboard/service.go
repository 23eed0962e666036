package dashboard

import (
	"context"
	"time"

	"github.com/clinops/console/internal/domain/appointments"
	"github.com/clinops/console/internal/domain/doctors"
	"github.com/clinops/console/internal/domain/patients"
)

// DoctorSource, PatientSource and AppointmentSource are the flattened
// collections the dashboard aggregates. The domain services satisfy
// them; read failures have already degraded to empty lists by the time
// they reach this package.
type DoctorSource interface {
	List(ctx context.Context) []*doctors.Doctor
}

type PatientSource interface {
	List(ctx context.Context) []*patients.Patient
}

type AppointmentSource interface {
	List(ctx context.Context) []*appointments.Appointment
}

type Service struct {
	doctors DoctorSource
	pts     PatientSource
	appts   AppointmentSource
	now     func() time.Time
}

func NewService(d DoctorSource, p PatientSource, a AppointmentSource) *Service {
	return &Service{doctors: d, pts: p, appts: a, now: time.Now}
}

// Overview returns the total record count per collection.
func (s *Service) Overview(ctx context.Context) Overview {
	return Overview{
		Doctors:      len(s.doctors.List(ctx)),
		Patients:     len(s.pts.List(ctx)),
		Appointments: len(s.appts.List(ctx)),
	}
}

// Weekly returns the 7-day appointment rollup anchored at wall-clock
// now.
func (s *Service) Weekly(ctx context.Context) []DayBucket {
	return WeeklyRollup(s.appts.List(ctx), s.now())
}
