package treestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seed loads a small demo tree into the store: three doctors in
// different approval states, three patients (one with no name, to
// exercise the display-name fallback), and a week of appointments.
// Dates are computed relative to now so the dashboard rollup always
// has something in its window.
func Seed(ctx context.Context, store Store, now time.Time) error {
	doctors := map[string]map[string]any{
		"doc-ellison": {
			"name":      "Dr. Harriet Ellison",
			"specialty": "Cardiology",
			"status":    "approved",
			"email":     "h.ellison@example.org",
			"rating":    4.8,
			"fee":       150,
		},
		"doc-okafor": {
			"name":      "Dr. Chidi Okafor",
			"specialty": "Dermatology",
			"status":    "pending",
			"email":     "c.okafor@example.org",
			"bio":       "Ten years in private practice.",
			"fee":       120,
		},
		"doc-svensson": {
			"name":      "Dr. Malin Svensson",
			"specialty": "Pediatrics",
			"status":    "rejected",
			"email":     "m.svensson@example.org",
			"licenseNumber": "SE-48121",
		},
	}
	for id, doc := range doctors {
		if err := store.PartialWrite(ctx, "doctors/"+id, doc); err != nil {
			return fmt.Errorf("seed doctor %s: %w", id, err)
		}
	}

	users := map[string]map[string]any{
		"usr-alvarez": {"name": "Rosa Alvarez", "email": "rosa@example.org"},
		"usr-tanaka":  {"name": "Kenji Tanaka", "email": "kenji@example.org"},
		// No name field: the console falls back to the appointment's
		// embedded patient name.
		"usr-nameless": {"email": "walkin@example.org"},
	}
	for id, u := range users {
		if err := store.PartialWrite(ctx, "users/"+id, u); err != nil {
			return fmt.Errorf("seed user %s: %w", id, err)
		}
	}

	type appt struct {
		owner   string
		daysAgo int
		doctor  string
		patient string
		status  string
	}
	appts := []appt{
		{"usr-alvarez", 0, "Dr. Harriet Ellison", "Rosa Alvarez", "confirmed"},
		{"usr-alvarez", 2, "Dr. Chidi Okafor", "Rosa Alvarez", "pending"},
		{"usr-tanaka", 1, "Dr. Harriet Ellison", "Kenji Tanaka", "completed"},
		{"usr-tanaka", 6, "Dr. Malin Svensson", "Kenji Tanaka", "cancelled"},
		{"usr-nameless", 3, "Dr. Harriet Ellison", "Dana Whitfield", "pending"},
		// Outside the rollup window on purpose.
		{"usr-tanaka", 9, "Dr. Chidi Okafor", "Kenji Tanaka", "completed"},
	}
	for _, a := range appts {
		day := now.AddDate(0, 0, -a.daysAgo)
		id := uuid.NewString()
		fields := map[string]any{
			"doctor":  a.doctor,
			"name":    a.patient,
			"date":    day.Format("Jan 2, 2006"),
			"time":    "10:30 AM",
			"dateIso": day.Format("2006-01-02"),
			"status":  a.status,
		}
		if err := store.PartialWrite(ctx, "appointments/"+a.owner+"/"+id, fields); err != nil {
			return fmt.Errorf("seed appointment for %s: %w", a.owner, err)
		}
	}

	return nil
}
