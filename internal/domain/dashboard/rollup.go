// Package dashboard computes the console's aggregate views: overall
// collection counts and the weekly appointment rollup. Everything is
// a pure function of already-flattened records; the store offers no
// server-side aggregation.
package dashboard

import (
	"time"

	"github.com/clinops/console/internal/domain/appointments"
)

const rollupDays = 7

// Overview is the total record count per collection. Multiplicity is
// the count; nothing is deduplicated.
type Overview struct {
	Doctors      int `json:"doctors"`
	Patients     int `json:"patients"`
	Appointments int `json:"appointments"`
}

// DayBucket is one day of the weekly rollup. Date is the bucket's
// YYYY-MM-DD key, Label a short weekday name for display.
type DayBucket struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WeeklyRollup buckets appointments by calendar day over the closed
// window [now−6d, now] in now's location, oldest day first. The result
// always has exactly 7 entries. An appointment counts only when its
// DateISO exactly equals a bucket key; absent or out-of-window dates
// are silently excluded.
func WeeklyRollup(appts []*appointments.Appointment, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, rollupDays)
	index := make(map[string]int, rollupDays)
	for i := rollupDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		index[key] = len(buckets)
		buckets = append(buckets, DayBucket{Date: key, Label: day.Weekday().String()[:3]})
	}

	for _, a := range appts {
		if i, ok := index[a.DateISO]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}
